package main

import (
	"fmt"

	"github.com/avdeev99/fundplay/internal/app"
	"github.com/avdeev99/fundplay/internal/config"
	"github.com/avdeev99/fundplay/internal/logger"
	"github.com/avdeev99/fundplay/internal/storage"
)

func main() {
	// загрузка конфига
	config := config.NewConfig()
	// инициализация логгера
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		panic(fmt.Sprintf("can't initialize logger: %s ", err.Error()))
	}
	defer logger.Sync()
	// создание и инициализация хранилища
	database, err := storage.NewDatabase(config.Server.DatabaseDSN)
	if err != nil {
		logger.Panic("can't create storage: ", err.Error())
	}
	if err := database.Initialize(); err != nil {
		logger.Panic("can't initialize storage: ", err.Error())
	}
	defer database.Close()

	// запуск приложения
	app.Run(config, storage.NewStorage(database))
}
