package state

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"folio/common"
	"folio/config"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	if ctx == nil {
		t.Fatal("ContextWithEnv() returned nil")
	}

	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Format != common.OutputFmtHtml {
		t.Errorf("Format = %v, want html", env.Format)
	}
	if env.Stdout != os.Stdout {
		t.Error("Stdout should default to os.Stdout")
	}
}

func TestEnvFromContext(t *testing.T) {
	t.Run("valid context", func(t *testing.T) {
		if env := EnvFromContext(ContextWithEnv(context.Background())); env == nil {
			t.Error("Expected non-nil environment")
		}
	})

	t.Run("panic on missing env", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic when env not in context")
			}
		}()
		EnvFromContext(context.Background())
	})
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	if uptime := env.Uptime(); uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
}

func TestLocalEnv_Logger(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	if env.Logger("cms") == nil {
		t.Fatal("Logger() must never return nil")
	}

	core, logs := observer.New(zap.DebugLevel)
	env.Log = zap.New(core)
	env.Logger("cms").Info("hello")
	if entries := logs.All(); len(entries) != 1 || entries[0].LoggerName != "cms" {
		t.Errorf("unexpected log entries: %+v", entries)
	}
}

func TestLocalEnv_RedirectAndRestore(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	env.Cfg = &config.Config{}

	// no logger - nothing happens
	env.RedirectStdLog()
	env.RestoreStdLog()

	core, logs := observer.New(zap.InfoLevel)
	env.Log = zap.New(core)

	env.RedirectStdLog()
	log.Print("from std log")
	env.RestoreStdLog()

	if logs.Len() != 1 {
		t.Errorf("expected 1 redirected entry, got %d", logs.Len())
	}

	// after restore std log must not reach zap anymore
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	log.Print("after restore")
	if logs.Len() != 1 {
		t.Errorf("std log still redirected after restore")
	}
}
