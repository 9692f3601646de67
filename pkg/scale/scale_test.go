package scale

import (
	"errors"
	"sync"
	"testing"
)

// recorder collects notifications for assertions.
type recorder struct {
	calls []ed
}

type ed struct{ old, new float64 }

func (r *recorder) ScaleChanged(old, new float64) {
	r.calls = append(r.calls, ed{old, new})
}

func TestNewDefaults(t *testing.T) {
	s := New()

	if got := s.Get(); got != 1.0 {
		t.Errorf("Get() = %v, want 1.0", got)
	}

	min, max := s.Bounds()
	if min != DefaultMin || max != DefaultMax {
		t.Errorf("Bounds() = (%v, %v), want (%v, %v)", min, max, DefaultMin, DefaultMax)
	}

	if got := s.DPI(); got != BaseDPI {
		t.Errorf("DPI() = %d, want %d", got, BaseDPI)
	}
}

func TestNewWithDetector(t *testing.T) {
	s := NewWithOptions(Options{
		Detect: func() (float64, error) { return 2.0, nil },
	})
	if got := s.Get(); got != 2.0 {
		t.Errorf("Get() = %v, want detected 2.0", got)
	}

	// Detection failure falls back to the initial factor.
	s = NewWithOptions(Options{
		Initial: 1.5,
		Detect:  func() (float64, error) { return 0, errors.New("headless") },
	})
	if got := s.Get(); got != 1.5 {
		t.Errorf("Get() = %v, want initial 1.5 after failed detection", got)
	}
}

func TestNewInvalidBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewWithOptions with min >= max should panic")
		}
	}()
	NewWithOptions(Options{Min: 2.0, Max: 1.0})
}

func TestUpdateClamps(t *testing.T) {
	tests := []struct {
		name      string
		requested float64
		want      float64
	}{
		{"below min", 0.1, DefaultMin},
		{"above max", 10.0, DefaultMax},
		{"in range", 1.5, 1.5},
		{"at min", DefaultMin, DefaultMin},
		{"at max", DefaultMax, DefaultMax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Update(tt.requested)
			if got := s.Get(); got != tt.want {
				t.Errorf("Get() after Update(%v) = %v, want %v", tt.requested, got, tt.want)
			}
		})
	}
}

func TestUpdateNotifiesOnce(t *testing.T) {
	s := New()
	rec := &recorder{}
	s.Subscribe(rec)

	s.Update(2.0)

	if len(rec.calls) != 1 {
		t.Fatalf("listener called %d times, want 1", len(rec.calls))
	}
	if rec.calls[0] != (ed{1.0, 2.0}) {
		t.Errorf("listener got (%v, %v), want (1.0, 2.0)", rec.calls[0].old, rec.calls[0].new)
	}

	// Within epsilon: no notification, value unchanged.
	s.Update(2.0004)
	if len(rec.calls) != 1 {
		t.Errorf("listener called %d times after epsilon update, want 1", len(rec.calls))
	}
	if got := s.Get(); got != 2.0 {
		t.Errorf("Get() = %v after epsilon update, want 2.0", got)
	}

	// Beyond epsilon: one more notification.
	s.Update(2.5)
	if len(rec.calls) != 2 {
		t.Fatalf("listener called %d times, want 2", len(rec.calls))
	}
	if rec.calls[1] != (ed{2.0, 2.5}) {
		t.Errorf("listener got (%v, %v), want (2.0, 2.5)", rec.calls[1].old, rec.calls[1].new)
	}
}

func TestUpdateSameValueNoNotification(t *testing.T) {
	s := New()
	rec := &recorder{}
	s.Subscribe(rec)

	s.Update(1.0)

	if len(rec.calls) != 0 {
		t.Errorf("listener called %d times for unchanged value, want 0", len(rec.calls))
	}
}

func TestUpdateIgnoresNaN(t *testing.T) {
	s := New()
	rec := &recorder{}
	s.Subscribe(rec)

	nan := 0.0
	s.Update(nan / nan)

	if got := s.Get(); got != 1.0 {
		t.Errorf("Get() = %v after NaN update, want 1.0", got)
	}
	if len(rec.calls) != 0 {
		t.Errorf("listener called %d times for NaN update, want 0", len(rec.calls))
	}
}

func TestSubscribeDedupes(t *testing.T) {
	s := New()
	rec := &recorder{}

	t1 := s.Subscribe(rec)
	t2 := s.Subscribe(rec)

	if t1 != t2 {
		t.Error("subscribing the same listener twice should return the same token")
	}
	if got := s.SubscriberCount(); got != 1 {
		t.Errorf("SubscriberCount() = %d, want 1", got)
	}

	s.Update(2.0)
	if len(rec.calls) != 1 {
		t.Errorf("duplicate subscription produced %d notifications, want 1", len(rec.calls))
	}
}

func TestSubscribeNil(t *testing.T) {
	s := New()
	token := s.Subscribe(nil)
	if token != (Token{}) {
		t.Error("Subscribe(nil) should return the zero token")
	}
	if got := s.SubscriberCount(); got != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", got)
	}
}

func TestSubscribeFuncListeners(t *testing.T) {
	// ListenerFunc values are not comparable; each subscription is distinct
	// and must not panic during dedupe.
	s := New()
	var a, b int
	s.Subscribe(ListenerFunc(func(old, new float64) { a++ }))
	s.Subscribe(ListenerFunc(func(old, new float64) { b++ }))

	if got := s.SubscriberCount(); got != 2 {
		t.Fatalf("SubscriberCount() = %d, want 2", got)
	}

	s.Update(2.0)
	if a != 1 || b != 1 {
		t.Errorf("func listeners called (%d, %d) times, want (1, 1)", a, b)
	}
}

func TestUnsubscribe(t *testing.T) {
	s := New()
	rec := &recorder{}
	token := s.Subscribe(rec)

	s.Unsubscribe(token)
	if got := s.SubscriberCount(); got != 0 {
		t.Errorf("SubscriberCount() = %d after unsubscribe, want 0", got)
	}

	s.Update(2.0)
	if len(rec.calls) != 0 {
		t.Errorf("unsubscribed listener called %d times, want 0", len(rec.calls))
	}

	// Idempotent: unsubscribing again, or an unknown token, is a no-op.
	s.Unsubscribe(token)
	s.Unsubscribe(Token{})
}

func TestListenerPanicIsolated(t *testing.T) {
	s := New()

	s.Subscribe(ListenerFunc(func(old, new float64) {
		panic("listener failure")
	}))
	rec := &recorder{}
	s.Subscribe(rec)

	// Must not propagate the panic and must still notify the second listener.
	s.Update(2.0)

	if len(rec.calls) != 1 {
		t.Errorf("second listener called %d times after first panicked, want 1", len(rec.calls))
	}
	if got := s.Get(); got != 2.0 {
		t.Errorf("Get() = %v, want committed 2.0", got)
	}
}

func TestRefresh(t *testing.T) {
	s := New()

	s.Refresh(func() (float64, error) { return 2.0, nil })
	if got := s.Get(); got != 2.0 {
		t.Errorf("Get() = %v after refresh, want 2.0", got)
	}

	// Failed detection leaves the factor unchanged.
	s.Refresh(func() (float64, error) { return 0, errors.New("no display") })
	if got := s.Get(); got != 2.0 {
		t.Errorf("Get() = %v after failed refresh, want 2.0", got)
	}

	// Nil detector is a no-op.
	s.Refresh(nil)
	if got := s.Get(); got != 2.0 {
		t.Errorf("Get() = %v after nil refresh, want 2.0", got)
	}
}

func TestConcurrentUpdates(t *testing.T) {
	s := New()

	var mu sync.Mutex
	var seen []ed
	s.Subscribe(ListenerFunc(func(old, new float64) {
		mu.Lock()
		seen = append(seen, ed{old, new})
		mu.Unlock()
	}))

	factors := []float64{1.25, 1.5, 1.75, 2.0, 2.25, 2.5, 2.75, 3.0}
	var wg sync.WaitGroup
	for _, f := range factors {
		wg.Add(1)
		go func(f float64) {
			defer wg.Done()
			s.Update(f)
		}(f)
	}
	wg.Wait()

	// The final value must be one of the requested factors.
	final := s.Get()
	found := false
	for _, f := range factors {
		if f == final {
			found = true
		}
	}
	if !found {
		t.Errorf("Get() = %v, not among requested factors", final)
	}

	// Notifications never tear: each chains from a previously committed value.
	mu.Lock()
	defer mu.Unlock()
	for _, e := range seen {
		if e.old == e.new {
			t.Errorf("notification with old == new: %v", e.old)
		}
	}
}

func TestConcurrentGetDuringUpdate(t *testing.T) {
	s := New()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			s.Update(1.0 + float64(i%8)*0.25)
		}
	}()

	for i := 0; i < 1000; i++ {
		f := s.Get()
		if f < DefaultMin || f > DefaultMax {
			t.Fatalf("Get() = %v outside bounds", f)
		}
	}
	<-done
}
