//go:build linux

package capture

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux framebuffer console backend: mmaps /dev/fbN and copies the visible
// region on each capture. Requires the device to be configured for 16bpp
// RGB565.

const (
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

type fbBitfield struct {
	Offset   uint32
	Length   uint32
	MSBRight uint32
}

// fbVarScreenInfo mirrors struct fb_var_screeninfo from linux/fb.h.
type fbVarScreenInfo struct {
	XRes         uint32
	YRes         uint32
	XResVirtual  uint32
	YResVirtual  uint32
	XOffset      uint32
	YOffset      uint32
	BitsPerPixel uint32
	Grayscale    uint32
	Red          fbBitfield
	Green        fbBitfield
	Blue         fbBitfield
	Transp       fbBitfield
	NonStd       uint32
	Activate     uint32
	Height       uint32
	Width        uint32
	AccelFlags   uint32
	PixClock     uint32
	LeftMargin   uint32
	RightMargin  uint32
	UpperMargin  uint32
	LowerMargin  uint32
	HSyncLen     uint32
	VSyncLen     uint32
	Sync         uint32
	VMode        uint32
	Rotate       uint32
	Colorspace   uint32
	Reserved     [4]uint32
}

// fbFixScreenInfo mirrors struct fb_fix_screeninfo from linux/fb.h.
type fbFixScreenInfo struct {
	ID           [16]byte
	SMemStart    uintptr
	SMemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MMIOStart    uintptr
	MMIOLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

type fbdev struct {
	f    *os.File
	mem  []byte
	pix  []uint16
	info Info
}

func openDisplay(device uint32, width, height int) (Backend, error) {
	path := fmt.Sprintf("/dev/fb%d", device)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v", path, err)
	}

	var vinfo fbVarScreenInfo
	if err := fbIoctl(f, fbioGetVScreenInfo, unsafe.Pointer(&vinfo)); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: query variable screen info: %v", path, err)
	}
	var finfo fbFixScreenInfo
	if err := fbIoctl(f, fbioGetFScreenInfo, unsafe.Pointer(&finfo)); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: query fixed screen info: %v", path, err)
	}

	if vinfo.BitsPerPixel != 16 {
		f.Close()
		return nil, fmt.Errorf("%s: need 16bpp RGB565, device is %dbpp", path, vinfo.BitsPerPixel)
	}

	stride := int(finfo.LineLength) / 2
	w := min(width, int(vinfo.XRes))
	h := min(height, int(vinfo.YRes))

	mem, err := unix.Mmap(int(f.Fd()), 0, int(finfo.SMemLen), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap %s: %v", path, err)
	}

	return &fbdev{
		f:   f,
		mem: mem,
		pix: unsafe.Slice((*uint16)(unsafe.Pointer(&mem[0])), len(mem)/2),
		info: Info{
			Name:          "fbdev",
			DisplayID:     device,
			DisplayWidth:  vinfo.XRes,
			DisplayHeight: vinfo.YRes,
			Width:         w,
			Height:        h,
			Stride:        stride,
		},
	}, nil
}

func fbIoctl(f *os.File, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func (d *fbdev) Info() Info { return d.info }

func (d *fbdev) Capture(dst []uint16) error {
	stride, h := d.info.Stride, d.info.Height
	if len(d.pix) < stride*h {
		return fmt.Errorf("framebuffer mapping too small: %d pixels for %dx%d", len(d.pix), stride, h)
	}
	for y := 0; y < h; y++ {
		copy(dst[y*stride:(y+1)*stride], d.pix[y*stride:(y+1)*stride])
	}
	return nil
}

func (d *fbdev) Close() error {
	if err := unix.Munmap(d.mem); err != nil {
		d.f.Close()
		return fmt.Errorf("munmap: %v", err)
	}
	return d.f.Close()
}
