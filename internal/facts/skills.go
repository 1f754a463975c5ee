package facts

import "regexp"

// Vocabulary is the controlled list of skills recognised in documents, in reporting order.
var Vocabulary = []string{
	// languages
	"Python", "Java", "JavaScript", "C++", "C#", "Ruby", "PHP", "Swift", "Go", "Kotlin",
	"TypeScript", "R", "Rust", "Scala", "Perl", "HTML", "CSS", "SQL",

	// frameworks and libraries
	"React", "Angular", "Vue", "Django", "Flask", "Spring", "Node.js", "Express",
	"TensorFlow", "PyTorch", "Keras", "Pandas", "NumPy", "Scikit-learn",

	// databases
	"MySQL", "PostgreSQL", "MongoDB", "Oracle", "SQL Server", "Firebase", "Redis",
	"Elasticsearch", "Cassandra", "DynamoDB", "GraphQL",

	// cloud and devops
	"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "Jenkins", "CI/CD",
	"Git", "GitHub", "GitLab", "Terraform", "Ansible", "Heroku", "Serverless",

	// general technical
	"Machine Learning", "Artificial Intelligence", "Data Science", "Blockchain",
	"Cyber Security", "Network Security", "Data Analysis", "Big Data", "IoT",
	"Agile", "Scrum", "RESTful API", "Microservices", "Cloud Computing",
	"UI/UX", "Mobile Development", "Web Development", "Testing", "QA",

	// soft skills
	"Leadership", "Communication", "Teamwork", "Problem Solving", "Time Management",
	"Critical Thinking", "Creativity", "Project Management",
}

// skillPatterns match a vocabulary entry as a whole word. Boundaries are defined by the
// surrounding characters so entries ending in symbols, such as "C++", still match.
var skillPatterns = compileSkills(Vocabulary)

func compileSkills(skills []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(skills))
	for i, skill := range skills {
		patterns[i] = regexp.MustCompile(`(?i)(?:^|[^\pL\pN_])` + regexp.QuoteMeta(skill) + `(?:$|[^\pL\pN_])`)
	}
	return patterns
}

// Skills returns the vocabulary entries present in text, in vocabulary order.
func Skills(text string) []string {
	found := []string{}
	for i, pattern := range skillPatterns {
		if pattern.MatchString(text) {
			found = append(found, Vocabulary[i])
		}
	}
	return found
}
