package extract

// The three query documents are fixed shapes. Only the from/to window is
// interpolated; the aggregation query's filter and aggregation blocks are
// literal business logic (inbound telephony tasks with a non-null owner,
// count/avg/max over the four named fields) and are reproduced exactly.

// taskDetailsQuery fetches tasks with their full activity field set.
const taskDetailsQuery = `
{
    taskDetails(from: %d, to: %d) {
        tasks {
            id
            activities {
                totalCount
                nodes {
                    id
                    isActive
                    createdTime
                    endedTime
                    agentId
                    agentName
                    agentPhoneNumber
                    agentSessionId
                    agentChannelId
                    entrypointId
                    entrypointName
                    queueId
                    queueName
                    siteId
                    siteName
                    teamId
                    teamName
                    transferType
                    activityType
                    activityName
                    eventName
                    previousState
                    nextState
                    consultEpId
                    consultEpName
                    childContactId
                    childContactType
                    duration
                    destinationAgentPhoneNumber
                    destinationAgentId
                    destinationAgentName
                    destinationAgentSessionId
                    destinationAgentChannelId
                    destinationAgentTeamId
                    destinationAgentTeamName
                    destinationQueueName
                    destinationQueueId
                    terminationReason
                    ivrScriptId
                    ivrScriptName
                    ivrScriptTagId
                    ivrScriptTagName
                    lastActivityTime
                    skillsAssignedIn
                }
                pageInfo {
                    hasNextPage
                    endCursor
                }
            }
        }
        pageInfo {
            hasNextPage
            endCursor
        }
    }
}`

// agentSessionQuery fetches agent sessions with nested channel/activity info.
const agentSessionQuery = `
{
    agentSession(from: %d, to: %d) {
        agentSessions {
            agentSessionId
            agentId
            agentName
            userLoginId
            siteId
            siteName
            teamId
            teamName
            channelInfo {
                channelId
                channelType
                agentPhoneNumber
                subChannelType
                activities {
                    nodes {
                        id
                        startTime
                        endTime
                        duration
                        state
                        idleCode {
                            id
                            name
                        }
                        taskId
                        queue {
                            id
                            name
                        }
                        wrapupCode {
                            id
                            name
                        }
                        isOutdial
                        outboundType
                        isCurrentActivity
                        isLoginActivity
                        isLogoutActivity
                        changedById
                        changedByName
                    }
                }
            }
        }
        pageInfo {
            hasNextPage
            endCursor
        }
    }
}`

// taskAggregationQuery fetches per-owner statistics for inbound telephony
// tasks with an assigned owner.
const taskAggregationQuery = `
{
    taskDetails(
        from: %d,
        to: %d,
        filter: {
            and: [
                { direction: { equals: "inbound" } }
                { channelType: { equals: telephony } }
                { owner: { notequals: { id: null } } }
            ]
        },
        aggregations: [
            { field: "id", type: count, name: "Total Contacts Handled" }
            { field: "connectedDuration", type: average, name: "Average Talk Time" }
            { field: "holdDuration", type: max, name: "Maximum Hold Time" }
            { field: "totalDuration", type: average, name: "Average Handle Time" }
        ]
    ) {
        tasks {
            owner {
                name
                id
            }
            aggregation {
                name
                value
            }
        }
        pageInfo {
            hasNextPage
            endCursor
        }
    }
}`
