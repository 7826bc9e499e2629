package preprocessor

import (
	"reflect"
	"testing"
)

func TestCollectVariableSymbolsIgnoresLocalDefines(t *testing.T) {
	src := "#define LOCAL 1\n#ifdef LOCAL\nint a;\n#endif\n#ifdef EXTERNAL\nint b;\n#endif\n"
	got := collectVariableSymbols(src)
	want := []string{"EXTERNAL"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestCollectVariableSymbolsFromIfDefined(t *testing.T) {
	src := "#if defined(A) && defined(B)\nint x;\n#endif\n"
	got := collectVariableSymbols(src)
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestEnumerateConfigurationsTwoSymbols(t *testing.T) {
	configs, truncated := enumerateConfigurations([]string{"A", "B"}, 12, false)
	if truncated {
		t.Fatalf("did not expect truncation")
	}
	var names []string
	for _, c := range configs {
		names = append(names, c.name)
	}
	want := []string{"", "A", "B", "A;B"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("got %v want %v", names, want)
	}
}

func TestEnumerateConfigurationsRespectsMaxConfigs(t *testing.T) {
	configs, truncated := enumerateConfigurations([]string{"A", "B"}, 2, false)
	if !truncated {
		t.Fatalf("expected truncation")
	}
	if len(configs) != 2 {
		t.Fatalf("expected 2 configs, got %d", len(configs))
	}
	if configs[0].name != "" || configs[1].name != "A" {
		t.Fatalf("unexpected configs: %+v", configs)
	}
}

func TestEnumerateConfigurationsForceLiftsCap(t *testing.T) {
	configs, truncated := enumerateConfigurations([]string{"A", "B", "C"}, 2, true)
	if truncated {
		t.Fatalf("did not expect truncation with force set")
	}
	if len(configs) != 8 {
		t.Fatalf("expected all 8 configurations, got %d", len(configs))
	}
}
