package db

import (
	"context"
	"fmt"

	"github.com/randalmurphal/ccxport/internal/db/driver"
	"github.com/randalmurphal/ccxport/internal/wxcc"
)

// UpsertAgentSessions writes one agent_sessions row per session (last
// write wins on agentSessionId), flattening the first channel entry's
// scalar fields into the row. When that channel carries activity nodes
// they are appended to agent_activities in the same transaction.
func (d *DB) UpsertAgentSessions(ctx context.Context, sessions []wxcc.AgentSession) error {
	return d.withTx(ctx, func(tx driver.Tx) error {
		for i := range sessions {
			if err := upsertAgentSession(ctx, tx, &sessions[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertAgentSession(ctx context.Context, tx driver.Tx, s *wxcc.AgentSession) error {
	channel := s.ChannelInfo.First()
	var channelID, channelType, phoneNumber, subChannelType *string
	if channel != nil {
		channelID = channel.ChannelID
		channelType = channel.ChannelType
		phoneNumber = channel.AgentPhoneNumber
		subChannelType = channel.SubChannelType
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO agent_sessions (
			agent_session_id, agent_id, agent_name, user_login_id, site_id, site_name,
			team_id, team_name, channel_id, channel_type, agent_phone_number, sub_channel_type, raw_data
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(agent_session_id) DO UPDATE SET
			agent_id = excluded.agent_id,
			agent_name = excluded.agent_name,
			user_login_id = excluded.user_login_id,
			site_id = excluded.site_id,
			site_name = excluded.site_name,
			team_id = excluded.team_id,
			team_name = excluded.team_name,
			channel_id = excluded.channel_id,
			channel_type = excluded.channel_type,
			agent_phone_number = excluded.agent_phone_number,
			sub_channel_type = excluded.sub_channel_type,
			raw_data = excluded.raw_data
	`,
		s.AgentSessionID, s.AgentID, s.AgentName, s.UserLoginID, s.SiteID, s.SiteName,
		s.TeamID, s.TeamName, channelID, channelType, phoneNumber, subChannelType,
		string(s.Raw))
	if err != nil {
		return fmt.Errorf("upsert agent session: %w", err)
	}

	if channel == nil || channel.Activities == nil {
		return nil
	}
	return insertAgentActivities(ctx, tx, s.AgentSessionID, channel.Activities.Nodes)
}

// InsertAgentActivities appends one agent_activities row per activity for
// the given session. There is no natural unique key, so re-inserting the
// same input duplicates rows; callers rely on that append-only behavior.
func (d *DB) InsertAgentActivities(ctx context.Context, sessionID string, activities []wxcc.AgentActivity) error {
	return d.withTx(ctx, func(tx driver.Tx) error {
		return insertAgentActivities(ctx, tx, &sessionID, activities)
	})
}

func insertAgentActivities(ctx context.Context, tx driver.Tx, sessionID *string, activities []wxcc.AgentActivity) error {
	for i := range activities {
		a := &activities[i]

		// Each two-field sub-object flattens to an id/name column pair;
		// an absent sub-object leaves both NULL.
		var idleCodeID, idleCodeName, queueID, queueName, wrapupCodeID, wrapupCodeName *string
		if a.IdleCode != nil {
			idleCodeID = a.IdleCode.ID
			idleCodeName = a.IdleCode.Name
		}
		if a.Queue != nil {
			queueID = a.Queue.ID
			queueName = a.Queue.Name
		}
		if a.WrapupCode != nil {
			wrapupCodeID = a.WrapupCode.ID
			wrapupCodeName = a.WrapupCode.Name
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO agent_activities (
				agent_session_id, agent_id, start_time, end_time, duration, state,
				idle_code_id, idle_code_name, task_id, queue_id, queue_name,
				wrapup_code_id, wrapup_code_name, is_outdial, outbound_type,
				is_current_activity, is_login_activity, is_logout_activity,
				changed_by_id, changed_by_name, raw_data
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			sessionID, a.AgentID, a.StartTime, a.EndTime, a.Duration, a.State,
			idleCodeID, idleCodeName, a.TaskID, queueID, queueName,
			wrapupCodeID, wrapupCodeName, a.IsOutdial, a.OutboundType,
			a.IsCurrentActivity, a.IsLoginActivity, a.IsLogoutActivity,
			a.ChangedByID, a.ChangedByName, string(a.Raw))
		if err != nil {
			return fmt.Errorf("insert agent activity: %w", err)
		}
	}
	return nil
}
