// Package main is the entry point for stacctl, the STAC Index admin tool.
package main

import (
	"log/slog"
	"os"

	"stac-index/cmd/stacctl/app"
)

func main() {
	// 診断ログは stderr に出し、stdout はコマンドの出力用に空けておく
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
