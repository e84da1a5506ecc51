package facultysearch

import (
	"strings"
	"testing"
)

func TestDocumentText(t *testing.T) {
	page := `
	<!doctype html>
	<html>
	  <head>
	    <title>Jane Doe</title>
	    <style>body{color:red}</style>
	    <script>var x=1</script>
	  </head>
	  <body>
	    <p>Hello, world! 42</p>
	    <div>Marine <b>ecology</b></div>
	  </body>
	</html>`

	text := DocumentText([]byte(page))
	for _, m := range []string{"Hello, world! 42", "Marine ecology", "Jane Doe"} {
		if !strings.Contains(text, m) {
			t.Fatalf("DocumentText missing %q; got %q", m, text)
		}
	}
	for _, b := range []string{"var x", "color"} {
		if strings.Contains(text, b) {
			t.Fatalf("DocumentText should skip script/style; found %q in %q", b, text)
		}
	}
}

func TestDocumentTitle(t *testing.T) {
	doc, err := ParseDocument([]byte(`<html><head><title>  Jane Doe | CPP </title></head></html>`))
	if err != nil {
		t.Fatalf("ParseDocument error: %v", err)
	}
	if got := DocumentTitle(doc); got != "Jane Doe | CPP" {
		t.Fatalf("DocumentTitle = %q", got)
	}

	doc, _ = ParseDocument([]byte(`<p>no title</p>`))
	if got := DocumentTitle(doc); got != "" {
		t.Fatalf("DocumentTitle without <title> = %q; want empty", got)
	}
}
