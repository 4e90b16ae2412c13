package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/wire"
	"gorm.io/gorm"

	"prestevent/internal/chat/handler"
	"prestevent/internal/chat/live"
	"prestevent/internal/chat/repository"
	"prestevent/internal/chat/service"
	"prestevent/internal/common"
	"prestevent/internal/config"
	"prestevent/internal/dbmongo"
	"prestevent/internal/dbmysql"
	"prestevent/internal/listing"
	"prestevent/internal/media"
	"prestevent/internal/notif"
	"prestevent/internal/user"
)

// App is everything cmd/chat-svc needs to serve.
type App struct {
	Config         *config.Config
	Logger         *slog.Logger
	DB             *gorm.DB
	Tokens         *common.TokenManager
	ChatHandler    *handler.ChatHandler
	WSHandler      *handler.WSHandler
	UserHandler    *user.Handler
	ListingHandler *listing.Handler
	MediaServer    *media.HTTPServer
	Notifications  *notif.NotificationService
}

var StoreSet = wire.NewSet(
	dbmysql.NewMySQL,
	ProvideMongo,
	dbmongo.NewListingStore,
	dbmongo.NewMediaStorage,
	wire.Bind(new(service.ListingDirectory), new(*dbmongo.ListingStore)),
	wire.Bind(new(media.ImageStore), new(*dbmongo.MediaStorage)),
)

var ChatSet = wire.NewSet(
	repository.NewChatRepository,
	ProvideBroker,
	service.NewChatService,
	handler.NewChatHandler,
	handler.NewWSHandler,
	wire.Bind(new(service.MessageNotifier), new(*notif.NotificationService)),
)

var UserSet = wire.NewSet(
	ProvideTokenManager,
	user.NewProfileRepository,
	user.NewUserService,
	user.NewHandler,
	wire.Bind(new(service.ParticipantDirectory), new(user.UserService)),
	wire.Bind(new(notif.ParticipantLookup), new(user.UserService)),
)

var ListingSet = wire.NewSet(
	listing.NewListingService,
	listing.NewHandler,
	wire.Bind(new(listing.Store), new(*dbmongo.ListingStore)),
	wire.Bind(new(listing.Profiles), new(user.UserService)),
)

var NotificationSet = wire.NewSet(
	ProvideEmailService,
	ProvideNotificationService,
)

func ProvideLogger(cfg *config.Config) (*slog.Logger, func()) {
	logger, closeFile := config.SetupLogger(cfg.Logging)
	return logger, func() {
		if err := closeFile(); err != nil {
			logger.Error("closing log file", "error", err)
		}
	}
}

func ProvideMongo(cfg *config.Config, logger *slog.Logger) (*dbmongo.MongoClient, func(), error) {
	mc, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("✅ Connected to MongoDB", "database", cfg.MongoDB.Database)

	return mc, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mc.Close(ctx); err != nil {
			logger.Error("closing MongoDB client", "error", err)
		}
	}, nil
}

// ProvideBroker picks the live delivery backend named by LIVE_BROKER.
func ProvideBroker(cfg *config.Config, logger *slog.Logger) (live.Broker, func(), error) {
	var broker live.Broker
	switch cfg.Live.Broker {
	case config.BrokerRedis:
		client, err := live.NewRedisClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		broker = live.NewRedisBroker(client, cfg.Live, logger)
	case config.BrokerMemory, "":
		broker = live.NewMemoryBroker(cfg.Live.SubscriberBuffer, logger)
	default:
		return nil, nil, fmt.Errorf("unknown live broker %q", cfg.Live.Broker)
	}
	logger.Info("live broker ready", "broker", cfg.Live.Broker)

	return broker, func() {
		if err := broker.Close(); err != nil {
			logger.Error("closing live broker", "error", err)
		}
	}, nil
}

func ProvideTokenManager(cfg *config.Config) *common.TokenManager {
	return common.NewTokenManager(cfg.Auth)
}

// ProvideEmailService returns nil when email is disabled, which leaves only the log observer.
func ProvideEmailService(cfg *config.Config) common.EmailService {
	if !cfg.Email.Enabled || cfg.Email.SMTPHost == "" {
		return nil
	}
	return notif.NewSMTPEmailService(cfg.Email)
}

func ProvideNotificationService(
	cfg *config.Config,
	people notif.ParticipantLookup,
	email common.EmailService,
	logger *slog.Logger,
) (*notif.NotificationService, func()) {
	svc := notif.NewNotificationService(cfg, people, email, logger)
	return svc, svc.Shutdown
}
