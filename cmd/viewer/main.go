package main

import (
	"flag"
	"log"
	"runtime"
	"strings"

	"fxviewer/internal/logger"
	"fxviewer/internal/util"
	"fxviewer/pkg/config"
	"fxviewer/pkg/engine"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	presetPath := flag.String("preset", "", "Optional panel preset applied at startup")
	logLevel := flag.String("log-level", "", "Override the configured log level")
	flag.Parse()

	// Чтение конфигурации: без файла работаем на значениях по умолчанию
	cfg := config.DefaultConfig()
	configFound := util.FileExists(*configPath)
	if configFound {
		var err error
		if cfg, err = config.LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *presetPath != "" {
		cfg.Panel.Preset = *presetPath
	}

	// Инициализация логгера
	logger, err := logger.NewMultiLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logger.Close()

	logger.Info("Starting fxviewer...")
	if !configFound {
		logger.Warnf("Configuration %s not found, using defaults", *configPath)
	}

	var preset *config.Preset
	if cfg.Panel.Preset != "" && util.FileExists(cfg.Panel.Preset) {
		if preset, err = config.LoadPreset(cfg.Panel.Preset); err != nil {
			logger.Warnf("Ignoring preset: %v", err)
		} else {
			logger.Infof("Preset %q loaded from %s: %s", preset.Name, cfg.Panel.Preset, strings.Join(preset.Groups(), ", "))
		}
	}

	// Инициализация движка
	viewer, err := engine.NewEngine(cfg, logger, preset)
	if err != nil {
		logger.Fatalf("Failed to initialize viewer: %v", err)
	}

	logger.Info("Engine initialized, starting render loop...")
	viewer.Run()
}
