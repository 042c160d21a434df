//go:build linux && !headless

// audio_backend_alsa.go - ALSA stereo output implementation

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

/*
#cgo LDFLAGS: -lasound
#include <alsa/asoundlib.h>
#include <stdlib.h>

static snd_pcm_t* openPCM(const char* device, int* err) {
    snd_pcm_t* handle;
    *err = snd_pcm_open(&handle, device, SND_PCM_STREAM_PLAYBACK, 0);
    return handle;
}

static int setupPCM(snd_pcm_t* handle, unsigned int rate) {
    snd_pcm_hw_params_t* params;
    int err;

    snd_pcm_hw_params_alloca(&params);
    err = snd_pcm_hw_params_any(handle, params);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_access(handle, params, SND_PCM_ACCESS_RW_INTERLEAVED);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_format(handle, params, SND_PCM_FORMAT_FLOAT);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_channels(handle, params, 2);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_rate(handle, params, rate, 0);
    if (err < 0) return err;

    err = snd_pcm_hw_params(handle, params);
    if (err < 0) return err;

    return snd_pcm_prepare(handle);
}

static int writePCM(snd_pcm_t* handle, float* buffer, int frames) {
    return snd_pcm_writei(handle, buffer, frames);
}

static void closePCM(snd_pcm_t* handle) {
    if (handle != NULL) {
        snd_pcm_drain(handle);
        snd_pcm_close(handle);
    }
}
*/
import "C"
import (
	"fmt"
	"sync"
	"unsafe"
)

// ALSAPlayer adapts the engine to ALSA's push model: a dedicated goroutine
// pulls blocks from the renderer and writes interleaved stereo frames to the
// PCM device. snd_pcm_writei blocks until the device has room, so the loop
// self-paces against the hardware clock.
type ALSAPlayer struct {
	handle  *C.snd_pcm_t
	src     BlockRenderer
	samples []float32
	started bool
	stopCh  chan struct{}
	done    chan struct{}
	mutex   sync.Mutex
}

func NewALSAPlayer(sampleRate int, src BlockRenderer) (*ALSAPlayer, error) {
	var cerr C.int
	device := C.CString("default")
	defer C.free(unsafe.Pointer(device))

	handle := C.openPCM(device, &cerr)
	if cerr < 0 {
		return nil, fmt.Errorf("failed to open PCM device: %s", C.GoString(C.snd_strerror(cerr)))
	}

	if cerr = C.setupPCM(handle, C.uint(sampleRate)); cerr < 0 {
		C.closePCM(handle)
		return nil, fmt.Errorf("failed to setup PCM: %s", C.GoString(C.snd_strerror(cerr)))
	}

	return &ALSAPlayer{
		handle:  handle,
		src:     src,
		samples: make([]float32, BLOCK_SIZE*2),
	}, nil
}

func (ap *ALSAPlayer) Start() {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if ap.started || ap.handle == nil {
		return
	}
	ap.started = true
	ap.stopCh = make(chan struct{})
	ap.done = make(chan struct{})

	go ap.playbackLoop(ap.stopCh, ap.done)
}

func (ap *ALSAPlayer) playbackLoop(stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	buf := ap.samples

	for {
		select {
		case <-stopCh:
			return
		default:
		}

		ap.src.RenderBlock(buf)

		frames := C.writePCM(ap.handle, (*C.float)(unsafe.Pointer(&buf[0])), C.int(len(buf)/2))
		if frames < 0 {
			if frames == -C.EPIPE {
				// Underrun; recover and retry the block once.
				C.snd_pcm_prepare(ap.handle)
				frames = C.writePCM(ap.handle, (*C.float)(unsafe.Pointer(&buf[0])), C.int(len(buf)/2))
			}
			if frames < 0 {
				return
			}
		}
	}
}

func (ap *ALSAPlayer) Stop() {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if !ap.started {
		return
	}
	ap.started = false
	close(ap.stopCh)
	<-ap.done
}

func (ap *ALSAPlayer) Close() {
	ap.Stop()
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if ap.handle != nil {
		C.closePCM(ap.handle)
		ap.handle = nil
	}
}

func (ap *ALSAPlayer) IsStarted() bool {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()
	return ap.started
}
