package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"babymenu/internal/catalog"
	"babymenu/internal/planner"
)

func renderedWeek(t *testing.T) *goquery.Document {
	t.Helper()
	st := planner.NewState()
	child := planner.Child{ID: "c1", Name: "Mia", Gender: planner.Girl, BirthDate: "2023-04-02"}
	st.Children = append(st.Children, child)
	st.Foods["c1"] = []string{"Apple", "Banana", "Pear"}
	st.FoodCategories["c1"] = map[string]catalog.Category{"Apple": catalog.Fruits, "Banana": catalog.Fruits, "Pear": catalog.Fruits}
	st.Overrides["c1"] = map[string]string{"2024-01-12": "Pear"}

	today := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	plan := planner.ResolveWeek(st, "c1", today, today)

	var buf bytes.Buffer
	if err := WriteWeekHTML(&buf, child, 9, plan, catalog.Default()); err != nil {
		t.Fatalf("Failed to render week: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("Failed to parse rendered HTML: %v", err)
	}
	return doc
}

func TestWriteWeekHTML(t *testing.T) {
	doc := renderedWeek(t)

	if got := doc.Find(".week-label").Text(); got != "Week of Jan 7 - Jan 13" {
		t.Errorf("Expected week label 'Week of Jan 7 - Jan 13', got '%s'", got)
	}
	if got := doc.Find(".child-age").Text(); got != "9 mo" {
		t.Errorf("Expected age '9 mo', got '%s'", got)
	}
	if !doc.Find("body").HasClass("girl") {
		t.Error("Expected the girl theme")
	}

	cards := doc.Find(".day-card")
	if cards.Length() != 7 {
		t.Fatalf("Expected 7 day cards, got %d", cards.Length())
	}

	today := doc.Find(".day-card.today")
	if today.Length() != 1 {
		t.Fatalf("Expected exactly one today card, got %d", today.Length())
	}
	if got := today.Find(".day-name").Text(); got != "Wednesday" {
		t.Errorf("Expected today to be Wednesday, got '%s'", got)
	}
	if got := strings.TrimSpace(today.Find(".food").Text()); !strings.HasSuffix(got, "Banana") {
		t.Errorf("Expected today's food Banana, got '%s'", got)
	}

	manual := doc.Find(".day-card.manual")
	if manual.Length() != 1 {
		t.Fatalf("Expected one manual card, got %d", manual.Length())
	}
	if got := manual.Find(".day-date").Text(); got != "Jan 12" {
		t.Errorf("Expected the manual card on Jan 12, got '%s'", got)
	}
}

func TestWriteWeekHTMLEmptyCatalog(t *testing.T) {
	st := planner.NewState()
	child := planner.Child{ID: "c1", Name: "Leo", Gender: planner.Boy}
	st.Children = append(st.Children, child)
	day := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteWeekHTML(&buf, child, 5, planner.ResolveWeek(st, "c1", day, day), catalog.Default()); err != nil {
		t.Fatalf("Failed to render week: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("Failed to parse rendered HTML: %v", err)
	}

	if got := doc.Find(".day-card.empty").Length(); got != 7 {
		t.Errorf("Expected 7 empty cards, got %d", got)
	}
	if got := strings.TrimSpace(doc.Find(".day-card .food").First().Text()); got != planner.NoFoodsLabel {
		t.Errorf("Expected '%s', got '%s'", planner.NoFoodsLabel, got)
	}
}
