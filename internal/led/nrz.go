package led

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// NRZ drives a WS2812-class strip through an SPI port using the NRZ bit
// encoder. The strip is addressed as a 1xN image, one pixel per LED.
type NRZ struct {
	drawer display.Drawer
	port   spi.PortCloser
	count  int
	img    *image.NRGBA
}

// NewNRZ opens the SPI port (empty dev picks the first one) and prepares
// the encoder. speedHz around 2.5MHz suits WS2812 timing.
func NewNRZ(dev string, count int, speedHz int) (*NRZ, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid LED count %d", count)
	}
	if speedHz <= 0 {
		speedHz = 2500000
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	port, err := spireg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", dev, err)
	}
	d, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      physic.Frequency(speedHz) * physic.Hertz,
	})
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	if err := d.Halt(); err != nil {
		port.Close()
		return nil, fmt.Errorf("halt: %w", err)
	}
	return &NRZ{
		drawer: d,
		port:   port,
		count:  count,
		img:    image.NewNRGBA(image.Rect(0, 0, count, 1)),
	}, nil
}

func (n *NRZ) Write(rgb []byte) error {
	if len(rgb) != n.count*3 {
		return fmt.Errorf("rgb length %d does not match count %d", len(rgb), n.count)
	}
	for i := 0; i < n.count; i++ {
		n.img.SetNRGBA(i, 0, color.NRGBA{R: rgb[i*3], G: rgb[i*3+1], B: rgb[i*3+2], A: 255})
	}
	return n.drawer.Draw(n.drawer.Bounds(), n.img, image.Point{})
}

func (n *NRZ) Close() error {
	err := n.drawer.Halt()
	if cerr := n.port.Close(); err == nil {
		err = cerr
	}
	return err
}
