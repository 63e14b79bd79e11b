package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	cambio "cambio_wallet_back"
	"cambio_wallet_back/pkg/cache"
	"cambio_wallet_back/pkg/handler"
	"cambio_wallet_back/pkg/rates"
	"cambio_wallet_back/pkg/repository"
	"cambio_wallet_back/pkg/service"
	"cambio_wallet_back/pkg/utils"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	logrus.Infoln("Запуск сервера")

	if err := godotenv.Load(); err != nil {
		logrus.Infof("Ошибка инициализации переменных окружения .env: %s \n", err)
	}

	if err := InitConfig(); err != nil {
		logrus.Fatalf("Ошибка (viper) при инициализации конфига .yml: %s \n", err.Error())
	}
	logrus.Infoln("Конфиг YAML инициализирован")

	db, err := repository.NewPostgresDB(repository.Config{
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   viper.GetString("db.dbname"),
		SSLMode:  viper.GetString("db.sslmode"),
	})
	if err != nil {
		logrus.Fatalf("Ошибка при инициализации базы данных: %s \n", err.Error())
	}
	if err := repository.InitSchema(db); err != nil {
		logrus.Fatalf("Ошибка при создании схемы: %s \n", err.Error())
	}
	logrus.Info("База данных подключена")

	cache.SetDuration(viper.GetDuration("rates.cache_ttl"))

	repos := repository.NewRepository(db)
	rateProvider := rates.NewProvider(viper.GetString("rates.base_url"))
	notifier := utils.NewMailNotifier()

	services := service.NewService(repos, rateProvider, notifier, service.Config{
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  viper.GetDuration("jwt.access_ttl"),
		RefreshTokenTTL: viper.GetDuration("jwt.refresh_ttl"),
		QuoteTTL:        viper.GetDuration("conversion.quote_ttl"),
	})
	handlers := handler.NewHandler(services)

	// Фоновый опрос алертов watchlist живёт, пока жив процесс
	ctx, cancel := context.WithCancel(context.Background())
	evaluator := service.NewEvaluator(services.Watchlist, viper.GetDuration("watchlist.interval"))
	go evaluator.Run(ctx)

	srv := new(cambio.Server)
	go func() {
		if err := srv.Run(os.Getenv("PORT"), handlers.InitRoute()); err != nil {
			logrus.Errorf("Ошибка при запуске сервера: %s \n", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
	case <-ctx.Done():
	}
	logrus.Info("Остановка сервера...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Ошибка при остановке сервера: %s \n", err)
	}
	if err := db.Close(); err != nil {
		logrus.Errorf("Ошибка при закрытии базы данных: %s \n", err)
	}
	logrus.Info("Сервер остановлен")
}

func InitConfig() error {
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}
