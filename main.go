package main

import (
	"context"
	"encoding/base64"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/server"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/task"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/ui"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/utils/config"
	"gopkg.in/yaml.v2"
)

var (
	// 配置文件路径，为空且未提供config-data时使用默认配置（内置演示地图）
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 数据加载input的缓存地址，设置为空则禁用缓存功能
	// 缓存：将proto数据根据数据库db和col序列化到本地文件系统，并总是先试图从文件系统中加载
	cacheDir = flag.String("cache", "data/", "input cache dir path (empty means disable cache)")
	// 覆盖配置中的监听地址
	listen = flag.String("listen", "", "HTTP/websocket listening address, overrides viewer.listen")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "viewer")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	// 获取配置
	var c config.Config
	var file []byte
	var err error
	if *configPath != "" {
		file, err = os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else if *configData != "" {
		file, err = base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			log.Panicf("config data load err: %v", err)
		}
	} else {
		log.Warn("no config file or config data, using the demo map")
	}
	if err := yaml.UnmarshalStrict(file, &c); err != nil {
		log.Panicf("config file load err: %v", err)
	}
	log.Infof("%+v", c)
	rc, err := config.NewRuntimeConfig(c)
	if err != nil {
		log.Panicf("config err: %v", err)
	}
	if *listen != "" {
		rc.V.Listen = *listen
	}

	session, err := task.NewContext(rc, *cacheDir)
	if err != nil {
		log.Panicf("session init err: %v", err)
	}
	defer session.Close()
	u, err := ui.New(session)
	if err != nil {
		log.Fatalf("ui init err: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	srv := server.New(u, rc.V.FPS)
	go func() {
		select {
		case <-srv.Quit():
			stop()
		case <-ctx.Done():
		}
	}()
	go func() {
		addr := rc.V.Listen
		if strings.HasPrefix(addr, ":") {
			addr = "localhost" + addr
		}
		if err := task.WaitForServerReady("http://"+addr+"/healthz", 50, 100*time.Millisecond); err != nil {
			log.Warnf("%v", err)
			return
		}
		log.Infof("viewer ready at ws://%s/ws", addr)
	}()
	if err := srv.ListenAndServe(ctx, rc.V.Listen); err != nil {
		log.Panicf("server err: %v", err)
	}
	if err := u.SaveEditorState(); err != nil {
		log.Errorf("%v", err)
	}
	log.Infof("viewer exit")
}
