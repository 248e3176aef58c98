package main

import (
	"context"
	"time"

	"github.com/zambashope/moz-checkout/config"
	"github.com/zambashope/moz-checkout/internal/app"
	"github.com/zambashope/moz-checkout/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	checkoutService := app.New(sigCtx, cfg)

	checkoutService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	checkoutService.Close(ctx)
}
