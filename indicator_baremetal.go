//go:build baremetal

package findme

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// PinIndicator is an LED on a GPIO pin.
type PinIndicator struct {
	pin       machine.Pin
	activeLow bool
	on        bool
}

// NewPinIndicator configures pin as output and turns the LED off. Most
// development kits wire their user LEDs active low.
func NewPinIndicator(pin machine.Pin, activeLow bool) *PinIndicator {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p := &PinIndicator{pin: pin, activeLow: activeLow}
	p.Set(false)
	return p
}

func (p *PinIndicator) Set(on bool) {
	p.on = on
	p.pin.Set(on != p.activeLow)
}

func (p *PinIndicator) Toggle() {
	p.Set(!p.on)
}

// PixelStrip is a chain of WS2812 (NeoPixel) LEDs. Each pixel can be used as
// a separate Indicator through Pixel.
type PixelStrip struct {
	ws     ws2812.Device
	colors []color.RGBA
}

// NewPixelStrip configures pin as output and clears n pixels.
func NewPixelStrip(pin machine.Pin, n int) *PixelStrip {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	s := &PixelStrip{
		ws:     ws2812.New(pin),
		colors: make([]color.RGBA, n),
	}
	s.ws.WriteColors(s.colors)
	return s
}

// Pixel returns an Indicator showing c on pixel i when on.
func (s *PixelStrip) Pixel(i int, c color.RGBA) *PixelIndicator {
	return &PixelIndicator{strip: s, index: i, color: c}
}

// PixelIndicator is a single pixel of a PixelStrip.
type PixelIndicator struct {
	strip *PixelStrip
	index int
	color color.RGBA
	on    bool
}

func (p *PixelIndicator) Set(on bool) {
	p.on = on
	if on {
		p.strip.colors[p.index] = p.color
	} else {
		p.strip.colors[p.index] = color.RGBA{}
	}
	p.strip.ws.WriteColors(p.strip.colors)
}

func (p *PixelIndicator) Toggle() {
	p.Set(!p.on)
}
