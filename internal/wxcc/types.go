package wxcc

import (
	"bytes"
	"encoding/json"
)

// The Search API omits fields freely, so every scalar that maps to a
// column is a pointer: absent means nil means NULL. Records that are
// persisted capture their original bytes in Raw during unmarshal so
// fields not mapped into columns are never lost.

// PageInfo is the cursor metadata attached to every list result. It is
// decoded for completeness but never followed (single page per call).
type PageInfo struct {
	HasNextPage *bool   `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

// CodeRef is a two-field id/name sub-object (idle code, queue, wrapup code).
type CodeRef struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

// Owner identifies the agent owning a task in aggregation results.
type Owner struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

// Aggregation is one pre-computed statistic returned by the API.
type Aggregation struct {
	Name  *string  `json:"name"`
	Value *float64 `json:"value"`
}

// TaskActivity is one state-transition event within a task's lifecycle.
type TaskActivity struct {
	ID                          *string `json:"id"`
	IsActive                    *bool   `json:"isActive"`
	CreatedTime                 *int64  `json:"createdTime"`
	EndedTime                   *int64  `json:"endedTime"`
	AgentID                     *string `json:"agentId"`
	AgentName                   *string `json:"agentName"`
	AgentPhoneNumber            *string `json:"agentPhoneNumber"`
	AgentSessionID              *string `json:"agentSessionId"`
	AgentChannelID              *string `json:"agentChannelId"`
	EntrypointID                *string `json:"entrypointId"`
	EntrypointName              *string `json:"entrypointName"`
	QueueID                     *string `json:"queueId"`
	QueueName                   *string `json:"queueName"`
	SiteID                      *string `json:"siteId"`
	SiteName                    *string `json:"siteName"`
	TeamID                      *string `json:"teamId"`
	TeamName                    *string `json:"teamName"`
	TransferType                *string `json:"transferType"`
	ActivityType                *string `json:"activityType"`
	ActivityName                *string `json:"activityName"`
	EventName                   *string `json:"eventName"`
	PreviousState               *string `json:"previousState"`
	NextState                   *string `json:"nextState"`
	ConsultEpID                 *string `json:"consultEpId"`
	ConsultEpName               *string `json:"consultEpName"`
	ChildContactID              *string `json:"childContactId"`
	ChildContactType            *string `json:"childContactType"`
	Duration                    *int64  `json:"duration"`
	DestinationAgentPhoneNumber *string `json:"destinationAgentPhoneNumber"`
	DestinationAgentID          *string `json:"destinationAgentId"`
	DestinationAgentName        *string `json:"destinationAgentName"`
	DestinationAgentSessionID   *string `json:"destinationAgentSessionId"`
	DestinationAgentChannelID   *string `json:"destinationAgentChannelId"`
	DestinationAgentTeamID      *string `json:"destinationAgentTeamId"`
	DestinationAgentTeamName    *string `json:"destinationAgentTeamName"`
	DestinationQueueName        *string `json:"destinationQueueName"`
	DestinationQueueID          *string `json:"destinationQueueId"`
	TerminationReason           *string `json:"terminationReason"`
	IvrScriptID                 *string `json:"ivrScriptId"`
	IvrScriptName               *string `json:"ivrScriptName"`
	IvrScriptTagID              *string `json:"ivrScriptTagId"`
	IvrScriptTagName            *string `json:"ivrScriptTagName"`
	LastActivityTime            *int64  `json:"lastActivityTime"`
	SkillsAssignedIn            *string `json:"skillsAssignedIn"`

	Raw json.RawMessage `json:"-"`
}

func (a *TaskActivity) UnmarshalJSON(data []byte) error {
	type alias TaskActivity
	var v alias
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = TaskActivity(v)
	a.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// ActivityPage is the nodes wrapper used by both task and agent activities.
type ActivityPage[T any] struct {
	TotalCount *int      `json:"totalCount"`
	Nodes      []T       `json:"nodes"`
	PageInfo   *PageInfo `json:"pageInfo"`
}

// Task is one customer interaction record. The detail query populates ID
// and Activities; the aggregation query populates Owner and Aggregation.
type Task struct {
	ID          *string                     `json:"id"`
	Activities  *ActivityPage[TaskActivity] `json:"activities"`
	Owner       *Owner                      `json:"owner"`
	Aggregation []Aggregation               `json:"aggregation"`

	Raw json.RawMessage `json:"-"`
}

func (t *Task) UnmarshalJSON(data []byte) error {
	type alias Task
	var v alias
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = Task(v)
	t.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// TaskDetails is the taskDetails envelope.
type TaskDetails struct {
	Tasks    []Task    `json:"tasks"`
	PageInfo *PageInfo `json:"pageInfo"`
}

// AgentActivity is one state period within an agent session.
type AgentActivity struct {
	ID                *string  `json:"id"`
	StartTime         *int64   `json:"startTime"`
	EndTime           *int64   `json:"endTime"`
	Duration          *int64   `json:"duration"`
	State             *string  `json:"state"`
	AgentID           *string  `json:"agentId"`
	IdleCode          *CodeRef `json:"idleCode"`
	TaskID            *string  `json:"taskId"`
	Queue             *CodeRef `json:"queue"`
	WrapupCode        *CodeRef `json:"wrapupCode"`
	IsOutdial         *bool    `json:"isOutdial"`
	OutboundType      *string  `json:"outboundType"`
	IsCurrentActivity *bool    `json:"isCurrentActivity"`
	IsLoginActivity   *bool    `json:"isLoginActivity"`
	IsLogoutActivity  *bool    `json:"isLogoutActivity"`
	ChangedByID       *string  `json:"changedById"`
	ChangedByName     *string  `json:"changedByName"`

	Raw json.RawMessage `json:"-"`
}

func (a *AgentActivity) UnmarshalJSON(data []byte) error {
	type alias AgentActivity
	var v alias
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = AgentActivity(v)
	a.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// ChannelInfo is one channel entry within an agent session.
type ChannelInfo struct {
	ChannelID        *string                      `json:"channelId"`
	ChannelType      *string                      `json:"channelType"`
	AgentPhoneNumber *string                      `json:"agentPhoneNumber"`
	SubChannelType   *string                      `json:"subChannelType"`
	Activities       *ActivityPage[AgentActivity] `json:"activities"`
}

// ChannelInfoList tolerates the API returning channelInfo as either a
// sequence or a single object. Anything else decodes as empty.
type ChannelInfoList []ChannelInfo

func (c *ChannelInfoList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*c = nil
		return nil
	case trimmed[0] == '[':
		var list []ChannelInfo
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*c = list
		return nil
	case trimmed[0] == '{':
		var single ChannelInfo
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		*c = ChannelInfoList{single}
		return nil
	default:
		*c = nil
		return nil
	}
}

// First returns the first channel entry, or nil when there is none.
// Multi-channel sessions keep only their first entry in the flattened
// row; this is a known limitation, not a multi-channel policy.
func (c ChannelInfoList) First() *ChannelInfo {
	if len(c) == 0 {
		return nil
	}
	return &c[0]
}

// AgentSession is one agent login session.
type AgentSession struct {
	AgentSessionID *string         `json:"agentSessionId"`
	AgentID        *string         `json:"agentId"`
	AgentName      *string         `json:"agentName"`
	UserLoginID    *string         `json:"userLoginId"`
	SiteID         *string         `json:"siteId"`
	SiteName       *string         `json:"siteName"`
	TeamID         *string         `json:"teamId"`
	TeamName       *string         `json:"teamName"`
	ChannelInfo    ChannelInfoList `json:"channelInfo"`

	Raw json.RawMessage `json:"-"`
}

func (s *AgentSession) UnmarshalJSON(data []byte) error {
	type alias AgentSession
	var v alias
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = AgentSession(v)
	s.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// AgentSessionDetails is the agentSession envelope.
type AgentSessionDetails struct {
	AgentSessions []AgentSession `json:"agentSessions"`
	PageInfo      *PageInfo      `json:"pageInfo"`
}
