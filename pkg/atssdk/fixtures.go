package atssdk

// demoFixtures is the static dataset behind demo mode: one fictional agency
// ("Peak Talent") with enough clients, candidates, jobs and pipeline cards
// to make every dashboard view non-empty. Shapes match the live API's JSON
// exactly so consumers cannot tell the sources apart.
func demoFixtures() map[string][]Document {
	return map[string][]Document{
		ResourceClients: {
			{
				"id": "demo-cl-001", "org_id": DemoOrgID,
				"name": "Acme Robotics", "industry": "Manufacturing",
				"contact_name": "Dana Wells", "contact_email": "dana@acmerobotics.example",
				"notes": "Prefers batch intro calls on Fridays.",
			},
			{
				"id": "demo-cl-002", "org_id": DemoOrgID,
				"name": "Northwind Health", "industry": "Healthcare",
				"contact_name": "Priya Raman", "contact_email": "priya@northwind.example",
				"notes": "",
			},
			{
				"id": "demo-cl-003", "org_id": DemoOrgID,
				"name": "Bluefin Analytics", "industry": "Software",
				"contact_name": "Marco Silva", "contact_email": "marco@bluefin.example",
				"notes": "Fast feedback loop, 48h SLA on submissions.",
			},
		},
		ResourceCandidates: {
			{
				"id": "demo-ca-001", "org_id": DemoOrgID,
				"name": "Jordan Lee", "email": "jordan.lee@example.com", "phone": "+1 555 0101",
				"headline": "Senior Backend Engineer",
				"skills": []any{"go", "postgres", "kubernetes"},
				"resume_url": "",
			},
			{
				"id": "demo-ca-002", "org_id": DemoOrgID,
				"name": "Sam Okafor", "email": "sam.okafor@example.com", "phone": "+1 555 0102",
				"headline": "Staff Data Engineer",
				"skills": []any{"python", "spark", "airflow"},
				"resume_url": "",
			},
			{
				"id": "demo-ca-003", "org_id": DemoOrgID,
				"name": "Alex Fournier", "email": "alex.fournier@example.com", "phone": "+1 555 0103",
				"headline": "Engineering Manager",
				"skills": []any{"leadership", "go", "hiring"},
				"resume_url": "",
			},
			{
				"id": "demo-ca-004", "org_id": DemoOrgID,
				"name": "Riley Chen", "email": "riley.chen@example.com", "phone": "+1 555 0104",
				"headline": "Frontend Engineer",
				"skills": []any{"typescript", "react"},
				"resume_url": "",
			},
		},
		ResourceJobs: {
			{
				"id": "demo-jb-001", "org_id": DemoOrgID, "client_id": "demo-cl-001",
				"title": "Senior Backend Engineer", "location": "Remote (US)",
				"description": "Own the telemetry ingestion platform.",
				"status":      "open",
			},
			{
				"id": "demo-jb-002", "org_id": DemoOrgID, "client_id": "demo-cl-002",
				"title": "Data Engineer", "location": "Boston, MA",
				"description": "Build the clinical reporting pipeline.",
				"status":      "open",
			},
			{
				"id": "demo-jb-003", "org_id": DemoOrgID, "client_id": "demo-cl-003",
				"title": "Engineering Manager", "location": "Lisbon, PT",
				"description": "Lead a team of eight across two squads.",
				"status":      "paused",
			},
		},
		ResourceApplications: {
			{
				"id": "demo-ap-001", "org_id": DemoOrgID,
				"job_id": "demo-jb-001", "candidate_id": "demo-ca-001",
				"stage": "interview", "sort_index": float64(0),
			},
			{
				"id": "demo-ap-002", "org_id": DemoOrgID,
				"job_id": "demo-jb-001", "candidate_id": "demo-ca-004",
				"stage": "screening", "sort_index": float64(1),
			},
			{
				"id": "demo-ap-003", "org_id": DemoOrgID,
				"job_id": "demo-jb-002", "candidate_id": "demo-ca-002",
				"stage": "offer", "sort_index": float64(0),
			},
			{
				"id": "demo-ap-004", "org_id": DemoOrgID,
				"job_id": "demo-jb-003", "candidate_id": "demo-ca-003",
				"stage": "applied", "sort_index": float64(0),
			},
		},
		ResourceNotes: {
			{
				"id": "demo-nt-001", "org_id": DemoOrgID,
				"entity_kind": "candidate", "entity_id": "demo-ca-001",
				"body": "Strong systems design round, moving to onsite.",
			},
			{
				"id": "demo-nt-002", "org_id": DemoOrgID,
				"entity_kind": "client", "entity_id": "demo-cl-003",
				"body": "Wants two more EM profiles before Friday.",
			},
		},
	}
}
