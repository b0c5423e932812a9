package repository

import (
	"context"
	"time"

	"github.com/alumnet/reunion/internal/config"
	"github.com/alumnet/reunion/internal/entity"
	"github.com/mbeoliero/kit/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Repositories holds all repositories
type Repositories struct {
	DB           *gorm.DB
	Redis        *redis.Client
	User         *UserRepo
	Profile      *ProfileRepo
	Role         *RoleRepo
	Presence     *PresenceRepo
	Conversation *ConversationRepo
	Message      *MessageRepo
	Teacher      *TeacherRepo
	Student      *StudentRepo
	StudentGroup *StudentGroupRepo
	Gallery      *GalleryRepo
	Video        *VideoRepo
	Review       *ReviewRepo
	Reunion      *ReunionRepo
}

// NewRepositories creates all repositories
func NewRepositories(cfg *config.Config) (*Repositories, error) {
	db, err := initMySQL(cfg)
	if err != nil {
		return nil, err
	}

	rdb := initRedis(cfg)

	repos := &Repositories{
		DB:    db,
		Redis: rdb,
	}

	repos.User = NewUserRepo(db)
	repos.Profile = NewProfileRepo(db)
	repos.Role = NewRoleRepo(db)
	repos.Presence = NewPresenceRepo(db, rdb)
	repos.Conversation = NewConversationRepo(db)
	repos.Message = NewMessageRepo(db)
	repos.Teacher = NewTeacherRepo(db)
	repos.Student = NewStudentRepo(db)
	repos.StudentGroup = NewStudentGroupRepo(db)
	repos.Gallery = NewGalleryRepo(db)
	repos.Video = NewVideoRepo(db)
	repos.Review = NewReviewRepo(db)
	repos.Reunion = NewReunionRepo(db)

	return repos, nil
}

// initMySQL initializes MySQL connection
func initMySQL(cfg *config.Config) (*gorm.DB, error) {
	var logLevel logger.LogLevel
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	} else {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// initRedis initializes Redis connection
func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// Migrate creates or updates the schema for every entity
func (r *Repositories) Migrate() error {
	return r.DB.AutoMigrate(
		&entity.User{},
		&entity.Profile{},
		&entity.UserRole{},
		&entity.Presence{},
		&entity.Conversation{},
		&entity.Participant{},
		&entity.Message{},
		&entity.Teacher{},
		&entity.Student{},
		&entity.StudentGroup{},
		&entity.GroupMember{},
		&entity.GalleryItem{},
		&entity.Video{},
		&entity.Review{},
		&entity.ReunionInfo{},
	)
}

// Close closes all connections
func (r *Repositories) Close() error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	return r.Redis.Close()
}

// Transaction executes fn in a transaction
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.DB.WithContext(ctx).Transaction(fn)
}

// CheckConnection checks if database and redis connections are alive
func (r *Repositories) CheckConnection(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		log.CtxError(ctx, "mysql ping failed: %v", err)
		return err
	}

	if err := r.Redis.Ping(ctx).Err(); err != nil {
		log.CtxError(ctx, "redis ping failed: %v", err)
		return err
	}

	return nil
}
