package markdown

import (
	"reflect"
	"strings"
	"testing"

	"github.com/countyhub/go-minisite/pkg/interfaces"
)

func TestGoldmarkParserSafeModeDropsRawHTML(t *testing.T) {
	p := NewGoldmarkParser(interfaces.ParseOptions{SafeMode: true})

	out, err := p.Parse([]byte("Pancakes ~~$8~~ $6 <b>today</b>"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<del>$8</del>") {
		t.Fatalf("expected strikethrough by default, got %q", html)
	}
	if strings.Contains(html, "<b>") {
		t.Fatalf("expected raw html to be omitted, got %q", html)
	}
}

func TestGoldmarkParserReusesEngines(t *testing.T) {
	p := NewGoldmarkParser(interfaces.ParseOptions{})

	if _, err := p.ParseWithOptions([]byte("a"), interfaces.ParseOptions{Extensions: []string{"table", "linkify"}}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := p.ParseWithOptions([]byte("b"), interfaces.ParseOptions{Extensions: []string{"Linkify", "table", "table"}}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(p.engines) != 1 {
		t.Fatalf("expected equivalent options to share an engine, got %d", len(p.engines))
	}
}

func TestExtensionNames(t *testing.T) {
	if got := extensionNames(nil); !reflect.DeepEqual(got, []string{"linkify", "strikethrough"}) {
		t.Fatalf("unexpected defaults %v", got)
	}
	if got := extensionNames([]string{"emoji", " GFM "}); !reflect.DeepEqual(got, []string{"gfm"}) {
		t.Fatalf("expected unknown names dropped, got %v", got)
	}
}
