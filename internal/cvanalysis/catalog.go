package cvanalysis

// Catalogs are matched in declaration order. Order defines the order of
// extracted skills and titles and the tie-break between expertise categories.

var skillCatalog = []string{
	"JavaScript", "TypeScript", "React", "Node.js", "Python", "Java", "C++", "C#",
	"Ruby", "PHP", "Swift", "Kotlin", "Go", "Rust", "SQL", "MongoDB", "PostgreSQL",
	"Docker", "Kubernetes", "AWS", "Azure", "GCP", "Git", "Agile", "Scrum",
	"Marketing", "SEO", "SEM", "Sales", "CRM", "Content Writing", "Copywriting",
	"Data Analysis", "Excel", "PowerPoint", "Project Management", "Leadership",
	"Communication", "Problem Solving", "Team Collaboration", "HTML", "CSS",
	"Vue.js", "Angular", "Django", "Flask", "Spring", "Laravel", "Rails",
	"Machine Learning", "AI", "Deep Learning", "TensorFlow", "PyTorch",
	"GraphQL", "REST API", "Microservices", "CI/CD", "DevOps", "Linux",
	"Figma", "Adobe XD", "Photoshop", "Illustrator", "UI/UX", "Design",
	"Financial Analysis", "Accounting", "Budgeting", "Forecasting",
	"Customer Service", "Technical Support", "Troubleshooting",
}

var titleCatalog = []string{
	"Software Engineer", "Senior Developer", "Junior Developer", "Full Stack Developer",
	"Frontend Developer", "Backend Developer", "DevOps Engineer", "Data Scientist",
	"Product Manager", "Project Manager", "Marketing Manager", "Sales Manager",
	"UX Designer", "UI Designer", "Graphic Designer", "Analyst", "Consultant",
	"Director", "Team Lead", "Tech Lead", "CTO", "CEO", "VP", "Manager",
	"Coordinator", "Specialist", "Associate", "Intern", "Trainee",
}

var degreeCatalog = []string{
	"Bachelor", "Master", "PhD", "Associate", "Diploma", "Certificate",
	"B.S.", "B.A.", "M.S.", "M.A.", "MBA", "B.Tech", "M.Tech",
}

type category struct {
	Name     string
	Keywords []string
}

var expertiseCategories = []category{
	{Name: "Software Engineering", Keywords: []string{"JavaScript", "TypeScript", "React", "Node.js", "Python", "Java", "C++", "HTML", "CSS"}},
	{Name: "Data Science", Keywords: []string{"Python", "Machine Learning", "AI", "TensorFlow", "PyTorch", "Data Analysis"}},
	{Name: "DevOps", Keywords: []string{"Docker", "Kubernetes", "AWS", "Azure", "CI/CD", "Linux"}},
	{Name: "Marketing", Keywords: []string{"Marketing", "SEO", "SEM", "Content Writing", "Copywriting"}},
	{Name: "Sales", Keywords: []string{"Sales", "CRM", "Customer Service"}},
	{Name: "Design", Keywords: []string{"Figma", "Adobe XD", "Photoshop", "UI/UX", "Design"}},
	{Name: "Finance", Keywords: []string{"Financial Analysis", "Accounting", "Budgeting", "Forecasting"}},
	{Name: "Project Management", Keywords: []string{"Project Management", "Agile", "Scrum", "Leadership"}},
}

// Categories returns the expertise category names in tie-break order.
func Categories() []string {
	names := make([]string, 0, len(expertiseCategories))
	for _, c := range expertiseCategories {
		names = append(names, c.Name)
	}
	return names
}
