package main

import (
	"context"
	"icequeen"
	"icequeen/app"
	"icequeen/app/middleware"
	"icequeen/blockchain/staking"
	"icequeen/bot"
	"icequeen/config"
	"icequeen/internal/db"
	"icequeen/internal/metrics"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"
)

func main() {

	conf, err := config.NewConfig(".env")
	if err != nil {
		panic(err)
	}

	level, err := conf.LogLevel()
	if err != nil {
		panic(err)
	}
	/*
		memo.
		zerolog.SetGlobalLevel()는 이후에 생성되는 모든 zerolog.Logger의 로그 레벨을 설정함.
		단, mysql.go에서는 별도의 gorm logger을 사용하기 때문에 영향을 받지 않음.
	*/
	zerolog.SetGlobalLevel(level)
	lg := zerolog.New(os.Stdout).With().Str("Module", "Main").Timestamp().Logger()

	native, err := conf.Native()
	if err != nil {
		panic(err)
	}
	governance, err := conf.Governance()
	if err != nil {
		panic(err)
	}
	pools, err := conf.StakingPools()
	if err != nil {
		panic(err)
	}
	factory, err := conf.Factory()
	if err != nil {
		panic(err)
	}
	account, err := conf.Account()
	if err != nil {
		panic(err)
	}

	client, err := ethclient.Dial(conf.Chain.Rpc)
	if err != nil {
		panic(err)
	}
	defer client.Close()

	mt := metrics.NewMetrics("icequeen", nil)

	reader, err := staking.NewChainReader(client, pools, native, governance, factory,
		staking.WithConcurrency(conf.Chain.Concurrency),
	)
	if err != nil {
		panic(err)
	}

	agg, err := staking.NewAggregator(pools, native, governance, staking.WithOmissionRecorder(mt))
	if err != nil {
		panic(err)
	}

	stg, err := db.NewStorage(conf.MysqlConfig(), conf.RedisConfig())
	if err != nil {
		panic(err)
	}
	defer stg.Close()

	ch := make(chan string)

	tracker := icequeen.NewTracker(icequeen.TrackerConfig{
		Reader:      reader,
		Aggregator:  agg,
		Storage:     stg,
		Recorder:    mt,
		Account:     account,
		Channel:     ch,
		RefreshSpec: conf.Refresh.Spec,
		ReportSpec:  conf.Refresh.Report,
		CacheTTL:    conf.Refresh.CacheTTL,
		Retention:   conf.Refresh.Retention,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := tracker.Refresh(ctx); err != nil {
		lg.Error().Err(err).Msg("initial refresh failed")
	}
	cancel()

	scheduler, err := tracker.Run()
	if err != nil {
		panic(err)
	}
	defer scheduler.Stop()

	appConf := app.Config{
		Port:    conf.App.Port,
		JwtKey:  conf.App.JwtKey,
		Origins: conf.App.Origins,
	}
	go func() {
		if err := app.Run(appConf, tracker, stg, mt.Handler()); err != nil {
			lg.Error().Err(err).Msg("app stopped")
		}
	}()

	var authorization string
	if conf.App.JwtKey != "" {
		token, err := middleware.SignToken(conf.App.JwtKey, "telebot", 365*24*time.Hour)
		if err != nil {
			panic(err)
		}
		authorization = "Bearer " + token
	}

	if conf.Telegram.Token == "" {
		lg.Warn().Msg("telegram token not configured. messages are logged only")
		for msg := range ch {
			lg.Info().Str("msg", msg).Msg("notification")
		}
		return
	}

	botConf, err := conf.BotConfig()
	if err != nil {
		panic(err)
	}

	teleBot, err := bot.NewTeleBot(botConf)
	if err != nil {
		panic(err)
	}

	teleBot.Run(ch, conf.App.Port, authorization)
}
