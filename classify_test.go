package facultysearch

import (
	"reflect"
	"testing"
)

const profilePage = `<html><head><title>Jane Doe</title></head><body>
<nav>
  <a href="/sci/biological-sciences/index.shtml">Department</a>
  <a href="https://www.cpp.edu/faculty/jdoe/">Profile</a>
  <a href="#content">Skip</a>
  <a href="mailto:jdoe@cpp.edu">Email</a>
  <a href="/sci/biological-sciences/index.shtml">Department again</a>
  <a>no href</a>
</nav>
<div class="fac-info">
  <h1>Jane Doe</h1><p>Professor of <b>Marine</b> Ecology &amp; Evolution</p>
  <script>track()</script>
</div>
</body></html>`

func TestClassifierIsTarget(t *testing.T) {
	c := NewClassifier("")
	doc, err := ParseDocument([]byte(profilePage))
	if err != nil {
		t.Fatalf("ParseDocument error: %v", err)
	}
	if !c.IsTarget(doc) {
		t.Fatalf("profile page should be a target")
	}

	plain, _ := ParseDocument([]byte(`<html><body><div class="fac">x</div></body></html>`))
	if c.IsTarget(plain) {
		t.Fatalf("page without marker should not be a target")
	}

	custom := NewClassifier("section.bio")
	bio, _ := ParseDocument([]byte(`<section class="bio">x</section>`))
	if !custom.IsTarget(bio) || custom.IsTarget(doc) {
		t.Fatalf("custom selector not honored")
	}
}

func TestClassifierExtractLinks(t *testing.T) {
	c := NewClassifier("")
	doc, _ := ParseDocument([]byte(profilePage))

	got := c.ExtractLinks(doc, "https://www.cpp.edu")
	want := []string{
		"https://www.cpp.edu/sci/biological-sciences/index.shtml",
		"https://www.cpp.edu/faculty/jdoe/",
		"https://www.cpp.edu/sci/biological-sciences/index.shtml",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractLinks=%#v; want %#v", got, want)
	}
}

func TestClassifierSummary(t *testing.T) {
	c := NewClassifier("")
	doc, _ := ParseDocument([]byte(profilePage))

	got := c.Summary(doc)
	want := "Jane Doe Professor of Marine Ecology & Evolution"
	if got != want {
		t.Fatalf("Summary=%q; want %q", got, want)
	}

	plain, _ := ParseDocument([]byte(`<p>nothing</p>`))
	if s := c.Summary(plain); s != "" {
		t.Fatalf("Summary of non-target=%q; want empty", s)
	}
}
