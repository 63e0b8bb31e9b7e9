package main

import (
	"context"
	"fmt"

	"github.com/adiallo/orderflow/internal/adapter/auth"
	"github.com/adiallo/orderflow/internal/adapter/client/qrcode"
	"github.com/adiallo/orderflow/internal/adapter/config"
	"github.com/adiallo/orderflow/internal/adapter/handler/http"
	"github.com/adiallo/orderflow/internal/adapter/logger"
	"github.com/adiallo/orderflow/internal/adapter/notification"
	"github.com/adiallo/orderflow/internal/adapter/storage"
	"github.com/adiallo/orderflow/internal/adapter/storage/repository"
	"github.com/adiallo/orderflow/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("order repo creating error", zap.Error(err))
		return
	}
	carts, err := repository.NewCartStore(db)
	if err != nil {
		log.Error("cart store creating error", zap.Error(err))
		return
	}
	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	codes, err := qrcode.NewClient(conf.QRCode, log.Named("QRCode"))
	if err != nil {
		log.Error("qr code client creating error", zap.Error(err))
		return
	}

	statuses, err := conf.Orders.StatusValues()
	if err != nil {
		log.Error("statuses config error", zap.Error(err))
		return
	}
	localStatuses, err := conf.Orders.LocalStatusValues()
	if err != nil {
		log.Error("local statuses config error", zap.Error(err))
		return
	}

	svc, err := service.NewService(repo, carts, codes, service.Config{
		OrderTimeLimitDays: conf.Orders.TimeLimitDays,
		Statuses:           statuses,
		LocalStatuses:      localStatuses,
	}, log.Named("Service"))
	if err != nil {
		log.Error("order service creating error", zap.Error(err))
		return
	}

	dispatcher, err := notification.NewDispatcher(conf.Kafka, repo, log.Named("Dispatcher"))
	if err != nil {
		log.Error("event dispatcher creating error", zap.Error(err))
		return
	}
	go dispatcher.Run(ctx)

	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	paymentHandler, err := http.NewPaymentHandler(svc, log.Named("Payment handler"))
	if err != nil {
		log.Error("payment handler creating error", zap.Error(err))
		return
	}
	searchHandler, err := http.NewSearchHandler(svc, log.Named("Search handler"))
	if err != nil {
		log.Error("search handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, tokenService, orderHandler, paymentHandler, searchHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
