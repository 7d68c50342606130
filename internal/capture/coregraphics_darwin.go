//go:build darwin

package capture

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <dlfcn.h>
#include <stdlib.h>

typedef struct {
    void*  data;
    size_t size;
    int    width;
    int    height;
    size_t bytesPerRow;
} FrameData;

// CGWindowListCreateImage is unavailable in the macOS 15 SDK headers but still
// present in the CoreGraphics dylib. Load it dynamically.
typedef CGImageRef (*CGWindowListCreateImageFunc)(
    CGRect screenBounds,
    uint32_t listOption,
    uint32_t windowID,
    uint32_t imageOption
);

static CGWindowListCreateImageFunc getCGWindowListCreateImage(void) {
    static CGWindowListCreateImageFunc fn = NULL;
    if (!fn) {
        fn = (CGWindowListCreateImageFunc)dlsym(RTLD_DEFAULT, "CGWindowListCreateImage");
    }
    return fn;
}

FrameData captureDisplay(CGDirectDisplayID displayID) {
    FrameData result = {0};

    CGWindowListCreateImageFunc fn = getCGWindowListCreateImage();
    if (!fn) {
        return result;
    }

    CGRect bounds = CGDisplayBounds(displayID);
    // kCGWindowListOptionOnScreenOnly = 1, kCGNullWindowID = 0, kCGWindowImageDefault = 0
    CGImageRef image = fn(bounds, 1, 0, 0);
    if (!image) {
        return result;
    }

    result.width  = (int)CGImageGetWidth(image);
    result.height = (int)CGImageGetHeight(image);

    result.bytesPerRow = result.width * 4;
    result.size        = result.bytesPerRow * result.height;
    result.data        = malloc(result.size);
    if (!result.data) {
        CGImageRelease(image);
        result.size = 0;
        return result;
    }

    CGColorSpaceRef cs = CGColorSpaceCreateDeviceRGB();
    CGContextRef ctx = CGBitmapContextCreate(
        result.data,
        result.width,
        result.height,
        8,
        result.bytesPerRow,
        cs,
        kCGImageAlphaPremultipliedLast
    );
    CGContextDrawImage(ctx, CGRectMake(0, 0, result.width, result.height), image);
    CGContextRelease(ctx);
    CGColorSpaceRelease(cs);
    CGImageRelease(image);

    return result;
}

void freeFrameData(void* data) {
    free(data);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// CoreGraphics backend: one-shot display capture packed down to RGB565.
type cgDisplay struct {
	displayID C.CGDirectDisplayID
	info      Info
}

func openDisplay(device uint32, width, height int) (Backend, error) {
	var displayID C.CGDirectDisplayID
	if device == 0 {
		displayID = C.CGMainDisplayID()
	} else {
		var displays [16]C.CGDirectDisplayID
		var count C.uint32_t
		C.CGGetActiveDisplayList(16, &displays[0], &count)
		if int(device) >= int(count) {
			return nil, fmt.Errorf("display index %d out of range (have %d displays)", device, count)
		}
		displayID = displays[device]
	}

	bounds := C.CGDisplayBounds(displayID)
	dw := int(bounds.size.width)
	dh := int(bounds.size.height)
	w := min(width, dw)
	h := min(height, dh)

	return &cgDisplay{
		displayID: displayID,
		info: Info{
			Name:          "coregraphics",
			DisplayID:     device,
			DisplayWidth:  uint32(dw),
			DisplayHeight: uint32(dh),
			Width:         w,
			Height:        h,
			Stride:        w,
		},
	}, nil
}

func (c *cgDisplay) Info() Info { return c.info }

func (c *cgDisplay) Capture(dst []uint16) error {
	fd := C.captureDisplay(c.displayID)
	if fd.data == nil {
		return fmt.Errorf("display %d: capture failed", c.info.DisplayID)
	}
	defer C.freeFrameData(fd.data)

	w, h, stride := c.info.Width, c.info.Height, c.info.Stride
	if int(fd.width) < w || int(fd.height) < h {
		return fmt.Errorf("display %d: captured %dx%d, need at least %dx%d",
			c.info.DisplayID, fd.width, fd.height, w, h)
	}

	src := unsafe.Slice((*byte)(fd.data), int(fd.size))
	rowBytes := int(fd.bytesPerRow)
	for y := 0; y < h; y++ {
		row := src[y*rowBytes:]
		out := dst[y*stride:]
		for x := 0; x < w; x++ {
			r := row[x*4]
			g := row[x*4+1]
			b := row[x*4+2]
			out[x] = uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
		}
	}
	return nil
}

func (c *cgDisplay) Close() error { return nil }
