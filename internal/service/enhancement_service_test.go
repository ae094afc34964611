package service

import (
	"context"
	"elearn_backend/internal/config"
	"elearn_backend/internal/util"
	"errors"
	"strings"
	"testing"
	"time"
)

func aiConfig() config.AIConfig {
	return config.AIConfig{ChunkSize: 10, CacheTTL: time.Hour, MaxRetries: 3}
}

func TestChunkText(t *testing.T) {
	tests := []struct {
		text string
		size int
		want []string
	}{
		{"", 3, nil},
		{"abcdefg", 3, []string{"abc", "def", "g"}},
		{"abc", 3, []string{"abc"}},
		{"héllo", 2, []string{"hé", "ll", "o"}},
	}
	for _, tt := range tests {
		got := ChunkText(tt.text, tt.size)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Errorf("ChunkText(%q, %d) = %q, want %q", tt.text, tt.size, got, tt.want)
		}
	}
}

const sectionReply = `{"mainTitle":"Variables in Go","sections":[{"title":"Declaring","description":"d","content":[{"type":"paragraph","text":"var x int"}],"examples":[]}]}`

func TestEnhance_MergesChunksWithFallback(t *testing.T) {
	f := newFixture()
	ai := &scriptedAI{replies: []interface{}{
		sectionReply,
		errors.New("upstream 503"),
	}}
	cache := newMemCache()
	material := memMaterial{"lessons/11.txt": strings.Repeat("x", 15)}
	svc := NewEnhancementService(f.courses, f.progress, ai, material, cache, aiConfig())

	res, err := svc.Enhance(context.Background(), student, 11)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached || res.Message != "PDF explained" {
		t.Errorf("result = %+v", res)
	}
	if res.AI.MainTitle != "Variables in Go" {
		t.Errorf("mainTitle = %q", res.AI.MainTitle)
	}
	if len(res.AI.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(res.AI.Sections))
	}
	fallback := res.AI.Sections[1]
	if fallback.Title != "Section 2 (Processing Failed)" || fallback.Content[0].Text != "xxxxx" {
		t.Errorf("fallback = %+v", fallback)
	}
	if ok, _ := f.progress.HasEnhanced(student, 11); !ok {
		t.Error("enhancement not recorded")
	}

	again, err := svc.Enhance(context.Background(), student, 11)
	if err != nil {
		t.Fatal(err)
	}
	if !again.Cached || len(ai.prompts) != 2 {
		t.Errorf("second call cached=%v prompts=%d", again.Cached, len(ai.prompts))
	}
}

func TestEnhance_AllChunksFailedIsNotCached(t *testing.T) {
	f := newFixture()
	ai := &scriptedAI{replies: []interface{}{errors.New("down")}}
	cache := newMemCache()
	svc := NewEnhancementService(f.courses, f.progress, ai, memMaterial{"lessons/11.txt": "short"}, cache, aiConfig())

	res, err := svc.Enhance(context.Background(), student, 11)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.AI.Sections) != 1 || res.AI.MainTitle != "Variables" {
		t.Errorf("result = %+v", res.AI)
	}
	if cache.sets != 0 {
		t.Error("fallback-only content was cached")
	}
}

func TestEnhance_Errors(t *testing.T) {
	f := newFixture()
	svc := NewEnhancementService(f.courses, f.progress, &scriptedAI{}, memMaterial{}, newMemCache(), aiConfig())

	if _, err := svc.Enhance(context.Background(), student, 99); !errors.Is(err, util.ErrLessonNotFound) {
		t.Errorf("err = %v, want ErrLessonNotFound", err)
	}
	// Lesson 12 has no material key.
	if _, err := svc.Enhance(context.Background(), student, 12); err == nil {
		t.Error("expected material error")
	}
	if ok, _ := f.progress.HasEnhanced(student, 12); ok {
		t.Error("failed enhancement was recorded")
	}
}

func TestGetResources(t *testing.T) {
	f := newFixture()
	reply := `{"title":"Variables","description":"Storing values","youtubeLinks":[{"title":"v","link":"https://youtu.be/x","description":""}],"courseLinks":[]}`
	ai := &scriptedAI{replies: []interface{}{reply}}
	svc := NewResourceService(f.courses, ai, newMemCache(), aiConfig())

	res, err := svc.GetResources(context.Background(), 11)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached || len(res.AI.YoutubeLinks) != 1 {
		t.Errorf("result = %+v", res)
	}
	if !strings.Contains(ai.prompts[0], `"Variables"`) {
		t.Errorf("prompt does not name the lesson: %q", ai.prompts[0])
	}

	res, err = svc.GetResources(context.Background(), 11)
	if err != nil || !res.Cached {
		t.Fatalf("second call: %+v %v", res, err)
	}
}

func TestGetResources_SchemaViolation(t *testing.T) {
	f := newFixture()
	ai := &scriptedAI{replies: []interface{}{`{"title":"Variables","youtubeLinks":"none"}`}}
	svc := NewResourceService(f.courses, ai, newMemCache(), aiConfig())

	if _, err := svc.GetResources(context.Background(), 11); !errors.Is(err, util.ErrAIResponseInvalid) {
		t.Fatalf("err = %v, want ErrAIResponseInvalid", err)
	}
}
