package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	m, err := gdata.Open(gdata.Config{AppName: "mazebeam_test_settings"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.MusicVolume != 1.0 || s.SoundVolume != 1.0 {
		t.Errorf("Expected full volume multipliers, got music=%v sound=%v", s.MusicVolume, s.SoundVolume)
	}
	if !s.MusicEnabled || !s.SoundEnabled {
		t.Error("Expected audio enabled by default")
	}
	if s.ZoomWheelFactor != 0.1 {
		t.Errorf("ZoomWheelFactor: got %v, want 0.1", s.ZoomWheelFactor)
	}
	if s.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

func TestSettingsManager_NilGdataIsInMemory(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetMusicVolume(0.4)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail, got %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should not fail, got %v", err)
	}
	if sm.GetSettings().MusicVolume != 1.0 {
		t.Errorf("Expected defaults after Load() without storage, got %v", sm.GetSettings().MusicVolume)
	}
}

func TestSettingsManager_SaveAndReload(t *testing.T) {
	m := openTestGdata(t)

	sm := NewSettingsManager(m)
	sm.SetMusicVolume(0.25)
	sm.SetSoundEnabled(false)
	sm.SetZoomWheelFactor(0.2)
	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsManager(m)
	got := reloaded.GetSettings()
	if got.MusicVolume != 0.25 || got.SoundEnabled || got.ZoomWheelFactor != 0.2 || !got.Fullscreen {
		t.Errorf("Expected saved settings to round trip, got %+v", got)
	}
}

func TestSettingsManager_LoadClampsStoredValues(t *testing.T) {
	m := openTestGdata(t)
	stored := []byte("musicVolume: 3\nsoundVolume: -1\nzoomWheelFactor: 9\n")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, stored); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}

	got := NewSettingsManager(m).GetSettings()
	if got.MusicVolume != 1.0 || got.SoundVolume != 0.0 {
		t.Errorf("Expected volumes clamped, got music=%v sound=%v", got.MusicVolume, got.SoundVolume)
	}
	if got.ZoomWheelFactor != maxZoomWheelFactor {
		t.Errorf("Expected zoom factor clamped to %v, got %v", maxZoomWheelFactor, got.ZoomWheelFactor)
	}
	if !got.MusicEnabled {
		t.Error("Expected missing fields to keep defaults")
	}
}

func TestSettingsManager_CorruptDataFallsBack(t *testing.T) {
	m := openTestGdata(t)
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("musicVolume: [")); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}
	sm := NewSettingsManager(m)
	if sm.GetSettings().MusicVolume != 1.0 {
		t.Errorf("Expected defaults after corrupt data, got %+v", sm.GetSettings())
	}
}

func TestClampHelpers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) float64
		in   float64
		want float64
	}{
		{"volume below range", clampVolume, -0.5, 0},
		{"volume in range", clampVolume, 0.5, 0.5},
		{"volume above range", clampVolume, 1.5, 1},
		{"zoom unset", clampZoomFactor, 0, 0.1},
		{"zoom too small", clampZoomFactor, 0.001, minZoomWheelFactor},
		{"zoom in range", clampZoomFactor, 0.15, 0.15},
		{"zoom too large", clampZoomFactor, 2, maxZoomWheelFactor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
