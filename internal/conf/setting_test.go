package conf

import (
	"testing"
	"time"
)

func testSuites() map[string][]string {
	return map[string][]string{
		"Default": {"Base", "BigCache"},
		"Base":    {"MongoDB", "Index"},
		"Develop": {"Base", "LoggerFile"},
		"Cluster": {"Base", "Redis", "Transaction"},
	}
}

func TestUseDefault(t *testing.T) {
	kv := map[string]string{
		"Sanitizer": "strict",
	}
	suites := testSuites()
	suites["Default"] = append(suites["Default"], "Sanitizer")
	features := newFeatures(suites, kv)
	for _, data := range []struct {
		key    string
		expect string
		exist  bool
	}{
		{"Sanitizer", "strict", true},
		{"MongoDB", "", true},
		{"Index", "", true},
		{"BigCache", "", true},
		{"Redis", "", false},
	} {
		if v, ok := features.Cfg(data.key); ok != data.exist || v != data.expect {
			t.Errorf("key: %s expect: %s exist: %t got v: %s ok: %t", data.key, data.expect, data.exist, v, ok)
		}
	}
	for exp, res := range map[string]bool{
		"Sanitizer":          true,
		"Sanitizer = strict": true,
		"Sanitizer = ugc":    false,
		"strict":             false,
		"default":            true,
		"base":               true,
	} {
		if ok := features.CfgIf(exp); res != ok {
			t.Errorf("CfgIf(%s) want %t got %t", exp, res, ok)
		}
	}
}

func TestUse(t *testing.T) {
	features := newFeatures(testSuites(), nil)

	features.Use([]string{"develop"}, true)
	for exp, res := range map[string]bool{
		"MongoDB":    true,
		"LoggerFile": true,
		"BigCache":   false,
		"default":    false,
		"develop":    true,
	} {
		if ok := features.CfgIf(exp); res != ok {
			t.Errorf("CfgIf(%s) want %t got %t", exp, res, ok)
		}
	}

	features.UseDefault()
	features.Use([]string{"cluster", "", "demo"}, false)
	for exp, res := range map[string]bool{
		"MongoDB":     true,
		"BigCache":    true,
		"Redis":       true,
		"Transaction": true,
		"LoggerFile":  false,
		"demo":        true,
		"develop":     false,
	} {
		if ok := features.CfgIf(exp); res != ok {
			t.Errorf("CfgIf(%s) want %t got %t", exp, res, ok)
		}
	}
}

func TestFlatFeaturesCycle(t *testing.T) {
	features := newFeatures(map[string][]string{
		"a": {"b"},
		"b": {"a", "c"},
	}, nil)
	got := features.flatFeatures([]string{"a"})
	if len(got) != 3 {
		t.Fatalf("want 3 features got %v", got)
	}
}

func TestSetupSetting(t *testing.T) {
	if err := setupSetting([]string{"slim"}, true); err != nil {
		t.Fatalf("setupSetting: %s", err)
	}
	if AppSetting.DefaultQuantity != 15 {
		t.Errorf("want default quantity 15 got %d", AppSetting.DefaultQuantity)
	}
	if MongoDBSetting.ConnectTimeout != 10*time.Second {
		t.Errorf("want connect timeout 10s got %s", MongoDBSetting.ConnectTimeout)
	}
	if CfgIf("BigCache") {
		t.Errorf("slim suite should not enable BigCache")
	}
	if !CfgIf("Index") {
		t.Errorf("slim suite should enable Index")
	}
}
