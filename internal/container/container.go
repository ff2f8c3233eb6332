package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/skillink/skillink-api/config"
	"github.com/skillink/skillink-api/internal/domain/repository"
	"github.com/skillink/skillink-api/internal/session"
	"github.com/skillink/skillink-api/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	tokenManager *helpers.TokenManager

	sessionStore session.Store
	flowStore    session.FlowStore

	users    repository.UserRepository
	catalog  repository.CatalogRepository
	bookings repository.BookingRepository
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }
func SetPGPool(p *pgxpool.Pool)  { pgPool = p }
func GetPGPool() *pgxpool.Pool   { return pgPool }
func SetRedis(r *redis.Client)   { redisClient = r }
func GetRedis() *redis.Client    { return redisClient }

func SetTokens(m *helpers.TokenManager) { tokenManager = m }
func GetTokens() *helpers.TokenManager  { return tokenManager }

func SetSessionStore(s session.Store)  { sessionStore = s }
func GetSessionStore() session.Store   { return sessionStore }
func SetFlowStore(s session.FlowStore) { flowStore = s }
func GetFlowStore() session.FlowStore  { return flowStore }

func SetUsers(r repository.UserRepository)       { users = r }
func GetUsers() repository.UserRepository        { return users }
func SetCatalog(r repository.CatalogRepository)  { catalog = r }
func GetCatalog() repository.CatalogRepository   { return catalog }
func SetBookings(r repository.BookingRepository) { bookings = r }
func GetBookings() repository.BookingRepository  { return bookings }
