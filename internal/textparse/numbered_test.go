package textparse

import (
	"testing"
)

func TestNumberedListDotSeparator(t *testing.T) {
	response := `1. Current battery technologies and their limitations
2. Grid-scale implementation challenges
3. Cost-effectiveness and scalability`
	items := NumberedList(response)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d: %v", len(items), items)
	}
	if items[0] != "Current battery technologies and their limitations" {
		t.Errorf("unexpected first item: %q", items[0])
	}
}

func TestNumberedListParenSeparator(t *testing.T) {
	response := "1) first angle\n2) second angle"
	items := NumberedList(response)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[1] != "second angle" {
		t.Errorf("unexpected second item: %q", items[1])
	}
}

func TestNumberedListBullets(t *testing.T) {
	response := "- alpha\n* beta"
	items := NumberedList(response)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0] != "alpha" || items[1] != "beta" {
		t.Errorf("unexpected items: %v", items)
	}
}

func TestNumberedListWithCommentary(t *testing.T) {
	response := `Here are the subtasks:

1. research the history
2. research the economics

Let me know if you need more.`
	items := NumberedList(response)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %v", len(items), items)
	}
}

func TestNumberedListCodeFence(t *testing.T) {
	response := "```\n1. fenced item one\n2. fenced item two\n```"
	items := NumberedList(response)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %v", len(items), items)
	}
	if items[0] != "fenced item one" {
		t.Errorf("unexpected first item: %q", items[0])
	}
}

func TestNumberedListPlaceholderBrackets(t *testing.T) {
	items := NumberedList("1. [First subtask]")
	if len(items) != 1 || items[0] != "First subtask" {
		t.Errorf("expected brackets stripped, got %v", items)
	}
}

func TestNumberedListNoMatches(t *testing.T) {
	items := NumberedList("This is just prose without any list structure.")
	if items != nil {
		t.Errorf("expected nil for prose, got %v", items)
	}
}

func TestNumberedListEmpty(t *testing.T) {
	if items := NumberedList(""); items != nil {
		t.Errorf("expected nil for empty input, got %v", items)
	}
}

func TestNumberedListSkipsEmptyItems(t *testing.T) {
	items := NumberedList("1.\n2. real item")
	if len(items) != 1 || items[0] != "real item" {
		t.Errorf("expected empty item skipped, got %v", items)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	if got := Truncate("abcdefghij", 4); got != "abcd..." {
		t.Errorf("expected truncated string, got %q", got)
	}
}
