package display

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/devices/v3/waveshare2in13v4"
	"periph.io/x/host/v3"
)

var _ Panel = (*EPaper)(nil)

// EPaper drives a Waveshare 2.13" V4 e-paper HAT. The panel sleeps
// between frames and is woken for each new one.
type EPaper struct {
	port     spi.PortCloser
	dev      *waveshare2in13v4.Dev
	log      *slog.Logger
	sleeping bool
	// Last frame sent, to skip identical refreshes
	last *image1bit.VerticalLSB
}

// OpenEPaper initialises the host, opens the default SPI port and clears
// the panel.
func OpenEPaper(logger *slog.Logger) (*EPaper, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host: %w", err)
	}
	port, err := spireg.Open("")
	if err != nil {
		return nil, fmt.Errorf("open spi: %w", err)
	}
	opts := waveshare2in13v4.EPD2in13v4
	dev, err := waveshare2in13v4.NewHat(port, &opts)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("open e-paper: %w", err)
	}
	if err := dev.Init(); err != nil {
		port.Close()
		return nil, fmt.Errorf("init e-paper: %w", err)
	}
	if err := dev.Clear(color.White); err != nil {
		port.Close()
		return nil, fmt.Errorf("clear e-paper: %w", err)
	}
	return &EPaper{port: port, dev: dev, log: logger}, nil
}

func (e *EPaper) Bounds() image.Rectangle { return e.dev.Bounds() }

// Show converts img to one bit per pixel and refreshes the panel unless
// the frame is unchanged.
func (e *EPaper) Show(img image.Image) error {
	frame := image1bit.NewVerticalLSB(e.dev.Bounds())
	draw.Draw(frame, frame.Bounds(), img, img.Bounds().Min, draw.Src)
	if e.last != nil && bytes.Equal(e.last.Pix, frame.Pix) {
		e.log.Debug("e-paper frame unchanged")
		return nil
	}

	if err := e.wake(); err != nil {
		return err
	}
	if err := e.dev.Draw(e.dev.Bounds(), frame, image.Point{}); err != nil {
		return fmt.Errorf("draw e-paper: %w", err)
	}
	e.last = frame
	if err := e.dev.Sleep(); err != nil {
		return fmt.Errorf("sleep e-paper: %w", err)
	}
	e.sleeping = true
	return nil
}

// Close blanks the panel, puts it to sleep and releases the SPI port.
func (e *EPaper) Close() error {
	var errs []error
	if err := e.wake(); err != nil {
		errs = append(errs, err)
	} else {
		if err := e.dev.Clear(color.White); err != nil {
			errs = append(errs, fmt.Errorf("clear e-paper: %w", err))
		}
		if err := e.dev.Sleep(); err != nil {
			errs = append(errs, fmt.Errorf("sleep e-paper: %w", err))
		}
	}
	if err := e.dev.Halt(); err != nil {
		errs = append(errs, fmt.Errorf("halt e-paper: %w", err))
	}
	if err := e.port.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close spi: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func (e *EPaper) wake() error {
	if !e.sleeping {
		return nil
	}
	if err := e.dev.Init(); err != nil {
		return fmt.Errorf("wake e-paper: %w", err)
	}
	e.sleeping = false
	return nil
}
