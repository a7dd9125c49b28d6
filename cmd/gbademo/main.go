//go:build gameboyadvance

// Package main is the device program that shows the letter row demo.
package main

import (
	"github.com/retroenv/gbaword/internal/demo"
	"github.com/retroenv/gbaword/internal/gba"
	"github.com/retroenv/gbaword/internal/oam"
)

func main() {
	d, err := demo.New(gba.Hardware(), oam.ClearOnTransition)
	if err != nil {
		panic(err)
	}
	if err := d.SetWord("GBA"); err != nil {
		panic(err)
	}
	d.Run()
}
