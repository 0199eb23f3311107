//go:build tinygo

package main

import (
	"context"

	"kestrel/app"
	"kestrel/hal"
)

func main() {
	h := hal.New()
	if err := app.Boot(context.Background(), h, app.DefaultConfig()); err != nil {
		h.Logger().WriteLineString("boot: " + err.Error())
	}
	app.Halt(h.CPU())
}
