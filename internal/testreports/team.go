package testreports

// assignment is one recurring activity a member reports on every week.
type assignment struct {
	project   string
	milestone string

	// descriptions rotate week over week so blocker language varies the
	// way real reports do.
	descriptions []string

	priority string
	status   string

	// Progress starts at startProgress and moves weeklyDelta per week,
	// with a little jitter, clamped to [0,100].
	startProgress float64
	weeklyDelta   float64

	// deadlineWeeksOut emits a deadline that many weeks after the newest
	// reporting week. Zero means no deadline.
	deadlineWeeksOut int
}

// member describes one synthetic team member's reporting behavior.
type member struct {
	name string

	// dayOffset places the report that many days after the week's
	// Monday; hour sets the submission hour.
	dayOffset int
	hour      int

	// cadence is how many weeks pass between reports. Everyone reports
	// in the newest week so a fresh corpus never looks stale.
	cadence int

	// undatedReport marks which of the member's reports, counted from
	// the oldest, carries an unparsable timestamp, exercising the
	// tolerance paths. Negative disables it.
	undatedReport int

	// stringProgress emits progress values as numeric strings, the way
	// older report clients did.
	stringProgress bool

	// structuredEvery embeds project context into the first
	// accomplishment as a JSON payload every that many weeks. Zero
	// disables it.
	structuredEvery int

	// escalating indexes the challenge and concern pools by how far
	// into the corpus the week is instead of rotating, so the language
	// darkens over time.
	escalating bool

	assignments []assignment

	accomplishments []string
	challenges      []string
	concerns        []string
}

// team is the synthetic roster: a steady engineer, a blocked one, an
// overloaded one, a solo migration owner, and a part-time reviewer.
var team = []member{
	{
		name:          "Ana Barrett",
		dayOffset:     0,
		hour:          9,
		cadence:       1,
		undatedReport: -1,
		assignments: []assignment{
			{
				project:       "Atlas",
				milestone:     "Ingestion GA",
				descriptions:  []string{"Ingestion pipeline hardening"},
				priority:      "Medium",
				status:        "In Progress",
				startProgress: 30,
				weeklyDelta:   8,
			},
			{
				project:       "Atlas",
				milestone:     "Ingestion GA",
				descriptions:  []string{"Query layer profiling"},
				priority:      "Low",
				status:        "In Progress",
				startProgress: 10,
				weeklyDelta:   10,
			},
		},
		accomplishments: []string{
			"Shipped the retries layer for ingestion",
			"Closed out the schema migration cleanly",
			"Landed the query planner profiling harness",
			"Got the ingestion dashboards reviewed and merged",
		},
		challenges: []string{
			"",
			"Review turnaround was a little slow this week",
		},
	},
	{
		name:          "Ben Okafor",
		dayOffset:     1,
		hour:          16,
		cadence:       1,
		undatedReport: -1,
		assignments: []assignment{
			{
				project:   "Zephyr Integration",
				milestone: "Vendor cutover",
				descriptions: []string{
					"Waiting for vendor sandbox access",
					"Vendor integration blocked on credentials",
					"Still waiting for the vendor security review",
					"Vendor webhook contract blocked on their legal",
				},
				priority:         "High",
				status:           "Blocked",
				startProgress:    70,
				weeklyDelta:      -5,
				deadlineWeeksOut: 2,
			},
		},
		accomplishments: []string{
			"Documented the integration contract end to end",
			"Built the sandbox test harness while waiting",
		},
		challenges: []string{
			"Blocked on the vendor's security review, can't proceed with the cutover",
			"Still blocked, waiting for vendor credentials",
			"Dependencies on the vendor team keep slipping",
		},
		concerns: []string{
			"The cutover date is at risk if access doesn't land this week",
		},
	},
	{
		name:          "Carol Singh",
		dayOffset:     2,
		hour:          18,
		cadence:       1,
		undatedReport: -1,
		escalating:    true,
		assignments: []assignment{
			{
				project:       "Atlas",
				milestone:     "Reporting GA",
				descriptions:  []string{"Cross-team reporting rollout"},
				priority:      "High",
				status:        "In Progress",
				startProgress: 40,
				weeklyDelta:   4,
			},
			{
				project:       "Beacon Rollout",
				milestone:     "Pilot",
				descriptions:  []string{"Beacon pilot onboarding"},
				priority:      "High",
				status:        "In Progress",
				startProgress: 25,
				weeklyDelta:   6,
			},
			{
				project:       "Beacon Rollout",
				milestone:     "Pilot",
				descriptions:  []string{"Pilot escalation triage"},
				priority:      "High",
				status:        "In Progress",
				startProgress: 35,
				weeklyDelta:   5,
			},
			{
				project:       "Uncategorized",
				descriptions:  []string{"On-call and interrupt handling"},
				priority:      "Medium",
				status:        "In Progress",
				startProgress: 50,
			},
		},
		accomplishments: []string{
			"Onboarded three pilot customers",
			"Got the reporting rollout through change review",
			"Cleared the escalation backlog twice over",
		},
		challenges: []string{
			"Juggling the rollout and the pilot is challenging",
			"Too many parallel workstreams, struggling to keep up",
			"Feeling overwhelmed, the deadline pressure is constant",
			"Completely overloaded and exhausted, this pace is impossible",
		},
		concerns: []string{
			"",
			"Worried the pilot quality will slip",
			"Not enough time to do any of this properly",
		},
	},
	{
		name:            "Dev Patel",
		dayOffset:       3,
		hour:            11,
		cadence:         1,
		undatedReport:   -1,
		structuredEvery: 2,
		assignments: []assignment{
			{
				project:       "Orion Migration",
				milestone:     "Cutover",
				descriptions:  []string{"Orion data migration batches"},
				priority:      "Medium",
				status:        "In Progress",
				startProgress: 20,
				weeklyDelta:   9,
			},
			{
				project:       "Orion Migration",
				milestone:     "Cutover",
				descriptions:  []string{"Legacy decommission checklist"},
				priority:      "Low",
				status:        "In Progress",
				startProgress: 10,
				weeklyDelta:   3,
			},
		},
		accomplishments: []string{
			"Validated another tranche of migrated records",
			"Automated the batch reconciliation checks",
		},
		challenges: []string{
			"",
			"The legacy system docs are thin, slow going",
		},
	},
	{
		name:           "Elena Ruiz",
		dayOffset:      4,
		hour:           8,
		cadence:        2,
		undatedReport:  1,
		stringProgress: true,
		assignments: []assignment{
			{
				project:       "Atlas",
				milestone:     "Ingestion GA",
				descriptions:  []string{"Compliance review for ingestion"},
				priority:      "Medium",
				status:        "In Progress",
				startProgress: 45,
				weeklyDelta:   7,
			},
			{
				project:       "Beacon Rollout",
				milestone:     "Pilot",
				descriptions:  []string{"Beacon security sign-off"},
				priority:      "Low",
				status:        "In Progress",
				startProgress: 30,
				weeklyDelta:   6,
			},
		},
		accomplishments: []string{
			"Finished the ingestion compliance checklist",
			"Signed off the Beacon data-handling review",
		},
		challenges: []string{
			"",
		},
	},
}
