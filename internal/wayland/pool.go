package wayland

import (
	"fmt"
	"log/slog"
	"syscall"

	"github.com/neurlang/wayland/wl"
	"golang.org/x/sys/unix"

	"github.com/jmylchreest/waynag/internal/render"
)

// poolSlot is one shared-memory backing store. Each Commit wraps the store
// in a fresh wl_buffer; the slot stays busy until the compositor releases
// that buffer.
type poolSlot struct {
	pool    *DoublePool
	fd      int
	size    int
	data    []byte
	wlPool  *wl.ShmPool
	surface *wl.Surface
	busy    bool
}

// DoublePool double-buffers a surface: while the compositor scans out one
// slot the other is free for drawing. With both slots busy Acquire reports
// failure and the caller skips the frame.
type DoublePool struct {
	slots   [2]*poolSlot
	shm     *wl.Shm
	surface *wl.Surface
	logger  *slog.Logger
}

// NewDoublePool creates an empty pool drawing to surface. Backing memory
// is allocated lazily on the first Resize.
func NewDoublePool(shm *wl.Shm, surface *wl.Surface, logger *slog.Logger) *DoublePool {
	if logger == nil {
		logger = slog.Default()
	}
	p := &DoublePool{shm: shm, surface: surface, logger: logger}
	for i := range p.slots {
		p.slots[i] = &poolSlot{pool: p, fd: -1, surface: surface}
	}
	return p
}

// Acquire returns a slot that is not in flight, or ok=false when the
// compositor still holds both buffers.
func (p *DoublePool) Acquire() (render.Slot, bool) {
	for _, s := range p.slots {
		if !s.busy {
			return s, true
		}
	}
	return nil, false
}

// Destroy releases both slots. Buffers still held by the compositor
// destroy themselves on release.
func (p *DoublePool) Destroy() {
	for _, s := range p.slots {
		s.destroy()
	}
}

func (s *poolSlot) destroy() {
	if s.wlPool != nil {
		s.wlPool.Destroy()
		s.wlPool = nil
	}
	if s.data != nil {
		_ = syscall.Munmap(s.data)
		s.data = nil
	}
	if s.fd >= 0 {
		_ = syscall.Close(s.fd)
		s.fd = -1
	}
	s.size = 0
}

// Resize grows the slot's backing store to at least size bytes. Shrinking
// is a no-op; the wl_buffer geometry passed at Commit bounds what the
// compositor reads.
func (s *poolSlot) Resize(size int) error {
	if size <= s.size {
		return nil
	}
	if s.fd < 0 {
		fd, err := unix.MemfdCreate("waynag-shm", unix.MFD_CLOEXEC)
		if err != nil {
			return fmt.Errorf("memfd_create: %w", err)
		}
		s.fd = fd
	}
	if s.wlPool != nil {
		s.wlPool.Destroy()
		s.wlPool = nil
	}
	if s.data != nil {
		if err := syscall.Munmap(s.data); err != nil {
			return fmt.Errorf("munmap: %w", err)
		}
		s.data = nil
	}
	if err := syscall.Ftruncate(s.fd, int64(size)); err != nil {
		return fmt.Errorf("ftruncate: %w", err)
	}
	data, err := syscall.Mmap(s.fd, 0, size, syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("mmap: %w", err)
	}
	wlPool, err := s.pool.shm.CreatePool(uintptr(s.fd), int32(size))
	if err != nil {
		_ = syscall.Munmap(data)
		return fmt.Errorf("wl_shm create_pool: %w", err)
	}
	s.data = data
	s.size = size
	s.wlPool = wlPool
	return nil
}

// Commit copies pix into the backing store, attaches a buffer for it to
// the surface and commits. The slot stays busy until the buffer's release
// event arrives.
func (s *poolSlot) Commit(pix []byte, width, height int) error {
	if s.wlPool == nil || len(pix) > s.size {
		return fmt.Errorf("slot backing store too small: have %d, need %d", s.size, len(pix))
	}
	copy(s.data, pix)
	buffer, err := s.wlPool.CreateBuffer(0, int32(width), int32(height), int32(4*width), wl.ShmFormatArgb8888)
	if err != nil {
		return fmt.Errorf("wl_shm_pool create_buffer: %w", err)
	}
	buffer.AddReleaseHandler(&bufferRelease{slot: s, buffer: buffer})
	s.surface.Attach(buffer, 0, 0)
	s.surface.Damage(0, 0, int32(width), int32(height))
	s.surface.Commit()
	s.busy = true
	return nil
}

// bufferRelease frees the slot and the one-shot wl_buffer once the
// compositor is done with it.
type bufferRelease struct {
	slot   *poolSlot
	buffer *wl.Buffer
}

func (h *bufferRelease) HandleBufferRelease(wl.BufferReleaseEvent) {
	h.slot.busy = false
	h.buffer.Destroy()
}
