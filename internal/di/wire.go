//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"prestevent/internal/config"
	"prestevent/internal/dbmysql"
)

func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		ProvideLogger,
		StoreSet,
		UserSet,
		ListingSet,
		NotificationSet,
		ChatSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}

// InitializeDatabase is enough for the migrate command.
func InitializeDatabase(cfg *config.Config) (*gorm.DB, func(), error) {
	wire.Build(ProvideLogger, dbmysql.NewMySQL)
	return nil, nil, nil
}
