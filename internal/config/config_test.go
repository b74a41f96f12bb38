package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("INVENTORY_URL", "")
	t.Setenv("PAYMENT_URL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("BLOCKED_CUSTOMER_PREFIX", "")

	orders := LoadOrders()
	if orders.Port != "8000" {
		t.Fatalf("orders port default, got %q", orders.Port)
	}
	if orders.DatabaseURL != defaultDatabaseURL {
		t.Fatalf("orders database url default, got %q", orders.DatabaseURL)
	}
	if orders.InventoryURL != "http://localhost:8001" || orders.PaymentURL != "http://localhost:8002" {
		t.Fatalf("collaborator url defaults, got %+v", orders)
	}
	if orders.CORSOrigins != nil {
		t.Fatalf("cors origins default, got %v", orders.CORSOrigins)
	}

	if inv := LoadInventory(); inv.Port != "8001" {
		t.Fatalf("inventory port default, got %q", inv.Port)
	}
	if pay := LoadPayment(); pay.Port != "8002" || pay.BlockedPrefix != "X" {
		t.Fatalf("payment defaults, got %+v", pay)
	}
	if calc := LoadCalculator(); calc.Port != "8003" {
		t.Fatalf("calculator port default, got %q", calc.Port)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://other:other@db:5432/other")
	t.Setenv("INVENTORY_URL", "http://inventory:8001")
	t.Setenv("PAYMENT_URL", "http://payment:8002")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, http://app.local")
	t.Setenv("BLOCKED_CUSTOMER_PREFIX", "BLOCK")

	orders := LoadOrders()
	if orders.Port != "9000" {
		t.Fatalf("port env, got %q", orders.Port)
	}
	if orders.DatabaseURL != "postgres://other:other@db:5432/other" {
		t.Fatalf("database url env, got %q", orders.DatabaseURL)
	}
	if orders.InventoryURL != "http://inventory:8001" || orders.PaymentURL != "http://payment:8002" {
		t.Fatalf("collaborator urls env, got %+v", orders)
	}
	if len(orders.CORSOrigins) != 2 || orders.CORSOrigins[0] != "http://localhost:5173" || orders.CORSOrigins[1] != "http://app.local" {
		t.Fatalf("cors origins env, got %v", orders.CORSOrigins)
	}

	if pay := LoadPayment(); pay.BlockedPrefix != "BLOCK" {
		t.Fatalf("blocked prefix env, got %q", pay.BlockedPrefix)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "# comment\nexport FROM_ENV_FILE=hello\nQUOTED=\"with spaces\"\nALREADY_SET=file\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	t.Setenv("ALREADY_SET", "env")
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldwd)
		_ = os.Unsetenv("FROM_ENV_FILE")
		_ = os.Unsetenv("QUOTED")
	})

	LoadEnvFile(nil)

	if got := os.Getenv("FROM_ENV_FILE"); got != "hello" {
		t.Fatalf("expected FROM_ENV_FILE=hello, got %q", got)
	}
	if got := os.Getenv("QUOTED"); got != "with spaces" {
		t.Fatalf("expected quotes stripped, got %q", got)
	}
	if got := os.Getenv("ALREADY_SET"); got != "env" {
		t.Fatalf("existing variables must win, got %q", got)
	}
}
