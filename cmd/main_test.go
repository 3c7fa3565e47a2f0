package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"pomodoro": main,
	})
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			env.Setenv("TZ", "UTC")
			env.Setenv("NO_COLOR", "1")
			home := filepath.Join(env.WorkDir, "home")
			env.Setenv("HOME", home)
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
			return os.MkdirAll(home, 0o755)
		},
	})
}

func TestWeekdayFlag(t *testing.T) {
	var weekday time.Weekday
	value := weekdayValue{weekday: &weekday}
	if err := value.Set("Sunday"); err != nil {
		t.Fatalf("set sunday: %v", err)
	}
	if weekday != time.Sunday || value.String() != "sunday" {
		t.Fatalf("weekday = %v (%q), want sunday", weekday, value.String())
	}
	if err := value.Set("friday"); err == nil {
		t.Fatal("expected friday to be rejected")
	}
	if weekday != time.Sunday {
		t.Fatalf("rejected value changed weekday to %v", weekday)
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"run", "stats", "settings"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("command %q not registered: %v", name, err)
		}
	}
}
