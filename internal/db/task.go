package db

import (
	"context"
	"fmt"

	"github.com/randalmurphal/ccxport/internal/db/driver"
	"github.com/randalmurphal/ccxport/internal/wxcc"
)

// UpsertTasks writes one task row per task (last write wins on the id)
// and one task_activities row per nested activity. The whole batch runs
// in a single transaction. Missing optional fields map to NULL; the
// original nested record is kept in raw_data.
func (d *DB) UpsertTasks(ctx context.Context, tasks []wxcc.Task) error {
	return d.withTx(ctx, func(tx driver.Tx) error {
		for i := range tasks {
			if err := upsertTask(ctx, tx, &tasks[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertTask(ctx context.Context, tx driver.Tx, task *wxcc.Task) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO tasks (id, raw_data)
		VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET
			raw_data = excluded.raw_data
	`, task.ID, string(task.Raw))
	if err != nil {
		return fmt.Errorf("upsert task: %w", err)
	}

	if task.Activities == nil {
		return nil
	}
	for i := range task.Activities.Nodes {
		if err := upsertTaskActivity(ctx, tx, task.ID, &task.Activities.Nodes[i]); err != nil {
			return err
		}
	}
	return nil
}

func upsertTaskActivity(ctx context.Context, tx driver.Tx, taskID *string, a *wxcc.TaskActivity) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO task_activities (
			id, task_id, is_active, created_time, ended_time, agent_id, agent_name,
			agent_phone_number, agent_session_id, agent_channel_id, entrypoint_id,
			entrypoint_name, queue_id, queue_name, site_id, site_name, team_id,
			team_name, transfer_type, activity_type, activity_name, event_name,
			previous_state, next_state, consult_ep_id, consult_ep_name,
			child_contact_id, child_contact_type, duration,
			destination_agent_phone_number, destination_agent_id, destination_agent_name,
			destination_agent_session_id, destination_agent_channel_id,
			destination_agent_team_id, destination_agent_team_name,
			destination_queue_name, destination_queue_id, termination_reason,
			ivr_script_id, ivr_script_name, ivr_script_tag_id, ivr_script_tag_name,
			last_activity_time, skills_assigned_in, raw_data
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			task_id = excluded.task_id,
			is_active = excluded.is_active,
			created_time = excluded.created_time,
			ended_time = excluded.ended_time,
			agent_id = excluded.agent_id,
			agent_name = excluded.agent_name,
			agent_phone_number = excluded.agent_phone_number,
			agent_session_id = excluded.agent_session_id,
			agent_channel_id = excluded.agent_channel_id,
			entrypoint_id = excluded.entrypoint_id,
			entrypoint_name = excluded.entrypoint_name,
			queue_id = excluded.queue_id,
			queue_name = excluded.queue_name,
			site_id = excluded.site_id,
			site_name = excluded.site_name,
			team_id = excluded.team_id,
			team_name = excluded.team_name,
			transfer_type = excluded.transfer_type,
			activity_type = excluded.activity_type,
			activity_name = excluded.activity_name,
			event_name = excluded.event_name,
			previous_state = excluded.previous_state,
			next_state = excluded.next_state,
			consult_ep_id = excluded.consult_ep_id,
			consult_ep_name = excluded.consult_ep_name,
			child_contact_id = excluded.child_contact_id,
			child_contact_type = excluded.child_contact_type,
			duration = excluded.duration,
			destination_agent_phone_number = excluded.destination_agent_phone_number,
			destination_agent_id = excluded.destination_agent_id,
			destination_agent_name = excluded.destination_agent_name,
			destination_agent_session_id = excluded.destination_agent_session_id,
			destination_agent_channel_id = excluded.destination_agent_channel_id,
			destination_agent_team_id = excluded.destination_agent_team_id,
			destination_agent_team_name = excluded.destination_agent_team_name,
			destination_queue_name = excluded.destination_queue_name,
			destination_queue_id = excluded.destination_queue_id,
			termination_reason = excluded.termination_reason,
			ivr_script_id = excluded.ivr_script_id,
			ivr_script_name = excluded.ivr_script_name,
			ivr_script_tag_id = excluded.ivr_script_tag_id,
			ivr_script_tag_name = excluded.ivr_script_tag_name,
			last_activity_time = excluded.last_activity_time,
			skills_assigned_in = excluded.skills_assigned_in,
			raw_data = excluded.raw_data
	`,
		a.ID, taskID, a.IsActive, a.CreatedTime, a.EndedTime, a.AgentID, a.AgentName,
		a.AgentPhoneNumber, a.AgentSessionID, a.AgentChannelID, a.EntrypointID,
		a.EntrypointName, a.QueueID, a.QueueName, a.SiteID, a.SiteName, a.TeamID,
		a.TeamName, a.TransferType, a.ActivityType, a.ActivityName, a.EventName,
		a.PreviousState, a.NextState, a.ConsultEpID, a.ConsultEpName,
		a.ChildContactID, a.ChildContactType, a.Duration,
		a.DestinationAgentPhoneNumber, a.DestinationAgentID, a.DestinationAgentName,
		a.DestinationAgentSessionID, a.DestinationAgentChannelID,
		a.DestinationAgentTeamID, a.DestinationAgentTeamName,
		a.DestinationQueueName, a.DestinationQueueID, a.TerminationReason,
		a.IvrScriptID, a.IvrScriptName, a.IvrScriptTagID, a.IvrScriptTagName,
		a.LastActivityTime, a.SkillsAssignedIn, string(a.Raw))
	if err != nil {
		return fmt.Errorf("upsert task activity: %w", err)
	}
	return nil
}
