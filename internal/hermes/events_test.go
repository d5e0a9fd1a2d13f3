package hermes

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestEvaluationEventJSON(t *testing.T) {
	avg := 61.5
	evt := EvaluationEvent{
		SessionID:    "sess-001",
		ConceptName:  "Tigo Básico",
		Archetypes:   []string{"RESIGNED"},
		Status:       "completed",
		AverageScore: &avg,
		Verdict:      "Needs minor adjustments",
		Timestamp:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["session_id"] != "sess-001" {
		t.Errorf("expected session_id 'sess-001', got %v", raw["session_id"])
	}
	if raw["average_score"] != 61.5 {
		t.Errorf("expected average_score 61.5, got %v", raw["average_score"])
	}
	if _, ok := raw["concept_id"]; ok {
		t.Error("empty concept_id should be omitted")
	}
}

func TestStartedEventOmitsScore(t *testing.T) {
	data, _ := json.Marshal(EvaluationEvent{SessionID: "s", Status: "evaluating"})
	var raw map[string]any
	json.Unmarshal(data, &raw)
	if _, ok := raw["average_score"]; ok {
		t.Error("average_score should be omitted before completion")
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var p Publisher = &r
	p.Publish(SubjectChatMessage, ChatEvent{SessionID: "c1", QuestionsAsked: 1})
	p.Publish(SubjectChatClosed, ChatEvent{SessionID: "c1"})

	if got := r.Subjects(); !reflect.DeepEqual(got, []string{SubjectChatMessage, SubjectChatClosed}) {
		t.Errorf("subjects = %v", got)
	}
	var evt ChatEvent
	if err := json.Unmarshal(r.Messages()[0].Data, &evt); err != nil || evt.QuestionsAsked != 1 {
		t.Errorf("recorded payload = %+v, %v", evt, err)
	}
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	if err := p.Publish(SubjectEvaluationStarted, EvaluationEvent{}); err != nil {
		t.Errorf("Nop.Publish returned %v", err)
	}
}
