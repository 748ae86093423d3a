package wxcc

import (
	"encoding/json"
	"testing"
)

func TestTaskDecode_OptionalFields(t *testing.T) {
	raw := `{"id": "task-1"}`

	var task Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if task.ID == nil || *task.ID != "task-1" {
		t.Errorf("ID = %v", task.ID)
	}
	if task.Activities != nil {
		t.Errorf("Activities should be nil when absent")
	}
	if string(task.Raw) != raw {
		t.Errorf("Raw = %s, want original bytes", task.Raw)
	}
}

func TestTaskDecode_NestedActivities(t *testing.T) {
	raw := `{
		"id": "task-1",
		"activities": {
			"totalCount": 2,
			"nodes": [
				{"id": "act-1", "createdTime": 1700000000000, "agentName": "Alice"},
				{"id": "act-2", "duration": 45}
			]
		}
	}`

	var task Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if task.Activities == nil || len(task.Activities.Nodes) != 2 {
		t.Fatalf("Activities = %+v", task.Activities)
	}

	first := task.Activities.Nodes[0]
	if first.CreatedTime == nil || *first.CreatedTime != 1700000000000 {
		t.Errorf("CreatedTime = %v", first.CreatedTime)
	}
	if first.AgentName == nil || *first.AgentName != "Alice" {
		t.Errorf("AgentName = %v", first.AgentName)
	}
	if first.EndedTime != nil {
		t.Errorf("EndedTime should be nil when absent")
	}

	second := task.Activities.Nodes[1]
	if second.Duration == nil || *second.Duration != 45 {
		t.Errorf("Duration = %v", second.Duration)
	}
	if string(second.Raw) != `{"id": "act-2", "duration": 45}` {
		t.Errorf("activity Raw = %s", second.Raw)
	}
}

func TestChannelInfoList_Array(t *testing.T) {
	raw := `{
		"agentSessionId": "sess-1",
		"channelInfo": [
			{"channelId": "ch-1", "channelType": "telephony"},
			{"channelId": "ch-2", "channelType": "chat"}
		]
	}`

	var session AgentSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(session.ChannelInfo) != 2 {
		t.Fatalf("len(ChannelInfo) = %d, want 2", len(session.ChannelInfo))
	}
	first := session.ChannelInfo.First()
	if first == nil || *first.ChannelID != "ch-1" {
		t.Errorf("First() = %+v, want ch-1", first)
	}
}

func TestChannelInfoList_SingleObject(t *testing.T) {
	raw := `{"agentSessionId": "sess-1", "channelInfo": {"channelId": "ch-1"}}`

	var session AgentSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(session.ChannelInfo) != 1 {
		t.Fatalf("len(ChannelInfo) = %d, want 1", len(session.ChannelInfo))
	}
	if first := session.ChannelInfo.First(); first == nil || *first.ChannelID != "ch-1" {
		t.Errorf("First() = %+v", first)
	}
}

func TestChannelInfoList_Unexpected(t *testing.T) {
	for _, raw := range []string{
		`{"agentSessionId": "sess-1", "channelInfo": null}`,
		`{"agentSessionId": "sess-1", "channelInfo": "telephony"}`,
		`{"agentSessionId": "sess-1"}`,
	} {
		var session AgentSession
		if err := json.Unmarshal([]byte(raw), &session); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if session.ChannelInfo.First() != nil {
			t.Errorf("First() should be nil for %s", raw)
		}
	}
}

func TestAgentActivityDecode_CodeRefs(t *testing.T) {
	raw := `{
		"id": "act-1",
		"state": "Idle",
		"idleCode": {"id": "idle-9", "name": "Lunch"},
		"queue": {"id": "q-1", "name": "Support"}
	}`

	var activity AgentActivity
	if err := json.Unmarshal([]byte(raw), &activity); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if activity.IdleCode == nil || *activity.IdleCode.ID != "idle-9" || *activity.IdleCode.Name != "Lunch" {
		t.Errorf("IdleCode = %+v", activity.IdleCode)
	}
	if activity.Queue == nil || *activity.Queue.Name != "Support" {
		t.Errorf("Queue = %+v", activity.Queue)
	}
	if activity.WrapupCode != nil {
		t.Errorf("WrapupCode should be nil when absent")
	}
}

func TestAgentSessionDecode_RawPreserved(t *testing.T) {
	raw := `{"agentSessionId": "sess-1", "someFutureField": {"nested": true}}`

	var session AgentSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(session.Raw) != raw {
		t.Errorf("Raw = %s, want original bytes including unmapped fields", session.Raw)
	}
}
