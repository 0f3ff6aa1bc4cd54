package normalize

// headerSynonyms maps canonical field names to the raw header spellings seen
// in the wild. Lookups try the trimmed header as-is and lower-cased before
// falling back to generic camel-case conversion. The tables are static
// configuration; validators and the filter layer reference them read-only.
var headerSynonyms = map[string][]string{
	"clientId": {
		"ClientID", "clientid", "client_id", "Client ID", "client id",
		"CustomerID", "customerid", "customer_id", "Customer ID", "cust_id",
	},
	"clientName": {
		"ClientName", "clientname", "client_name", "Client Name", "client name",
		"CustomerName", "customername", "customer_name", "Customer Name",
	},
	"company": {
		"Company", "company", "CompanyName", "company_name", "Company Name",
		"Organization", "organization", "Organisation", "organisation",
	},
	"requirements": {
		"Requirements", "requirements", "Requirement", "requirement",
		"Needs", "needs", "RequiredSkills", "required_skills", "Required Skills",
	},
	"priority": {
		"Priority", "priority", "PriorityLevel", "priority_level", "Priority Level",
		"Importance", "importance", "Urgency", "urgency",
	},
	"workerId": {
		"WorkerID", "workerid", "worker_id", "Worker ID", "worker id",
		"EmployeeID", "employeeid", "employee_id", "Employee ID", "emp_id",
		"StaffID", "staff_id",
	},
	"skills": {
		"Skills", "skills", "Skill", "skill", "SkillSet", "skill_set", "Skill Set",
		"Technologies", "technologies", "Competencies", "competencies",
		"Expertise", "expertise",
	},
	"availability": {
		"Availability", "availability", "Available", "available",
		"AvailabilityPercent", "availability_percent", "Availability %",
		"Capacity", "capacity",
	},
	"rate": {
		"Rate", "rate", "HourlyRate", "hourly_rate", "Hourly Rate",
		"Cost", "cost", "Price", "price", "Wage", "wage",
	},
	"taskId": {
		"TaskID", "taskid", "task_id", "Task ID", "task id",
		"JobID", "jobid", "job_id", "Job ID", "TicketID", "ticket_id",
	},
	"duration": {
		"Duration", "duration", "DurationHours", "duration_hours", "Duration Hours",
		"Hours", "hours", "EstimatedHours", "estimated_hours", "Effort", "effort",
	},
	"deadline": {
		"Deadline", "deadline", "DueDate", "duedate", "due_date", "Due Date",
		"TargetDate", "target_date", "Target Date",
	},
	"description": {
		"Description", "description", "Desc", "desc", "Details", "details",
		"Notes", "notes", "Summary", "summary",
	},
	"status": {
		"Status", "status", "State", "state", "TaskStatus", "task_status",
	},
	"email": {
		"Email", "email", "EmailAddress", "email_address", "E-mail", "e-mail",
		"Mail", "mail",
	},
	"phone": {
		"Phone", "phone", "PhoneNumber", "phone_number", "Phone Number",
		"Mobile", "mobile", "Contact", "contact",
	},
	"location": {
		"Location", "location", "City", "city", "Office", "office",
		"Site", "site", "Region", "region",
	},
	"department": {
		"Department", "department", "Dept", "dept", "Team", "team",
	},
}

// synonymIndex is the inverted lookup built once at init: raw spelling (and
// its lower-cased form) to canonical name.
var synonymIndex = buildSynonymIndex()

func buildSynonymIndex() map[string]string {
	index := make(map[string]string)
	for canonical, variants := range headerSynonyms {
		for _, variant := range variants {
			index[variant] = canonical
			index[lower(variant)] = canonical
		}
		index[canonical] = canonical
		index[lower(canonical)] = canonical
	}
	return index
}
