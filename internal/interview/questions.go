// Package interview generates mock-interview questions from a resume analysis
// and scores the candidate's answers.
package interview

import (
	"fmt"
	"strings"

	"github.com/cloudflex/assistant/internal/scoring"
)

// MaxQuestions caps a generated interview.
const MaxQuestions = 10

// Question is one interview prompt.
type Question struct {
	ID             int    `json:"id"`
	Question       string `json:"question"`
	Category       string `json:"category"`
	ExpectedAnswer string `json:"expected_answer"`
	CaseStudy      string `json:"case_study,omitempty"`
	FollowUp       string `json:"follow_up,omitempty"`
}

// skillTemplate is asked when its skill category was detected. Format takes
// the detected skills joined with ", ".
type skillTemplate struct {
	category       string
	format         string
	label          string
	expectedAnswer string
	caseStudy      string
	followUp       string
}

var skillTemplates = []skillTemplate{
	{
		category:       scoring.CategoryFrontend,
		format:         "I see you have experience with %s. Can you walk me through how you would optimize the performance of a React application that's loading slowly?",
		label:          "Frontend Development",
		expectedAnswer: "Should cover profiling, code splitting, memoization and bundle size",
		caseStudy:      "A React app with 50+ components is taking 8-10 seconds to load initially. Users are complaining about slow performance.",
		followUp:       "What tools would you use to identify performance bottlenecks?",
	},
	{
		category:       scoring.CategoryBackend,
		format:         "Given your %s experience, how would you design a scalable API that needs to handle 10,000 concurrent users?",
		label:          "Backend Architecture",
		expectedAnswer: "Should cover horizontal scaling, caching, rate limiting and load balancing",
		caseStudy:      "An e-commerce platform needs to handle flash sales where traffic spikes 100x normal levels within minutes.",
		followUp:       "How would you implement rate limiting and caching strategies?",
	},
	{
		category:       scoring.CategoryDatabases,
		format:         "With your database experience in %s, how would you handle a database migration with zero downtime?",
		label:          "Database Management",
		expectedAnswer: "Should cover expand/contract migrations, backfills, backups and rollback",
		caseStudy:      "A production database with 100M+ records needs schema changes while maintaining 24/7 availability.",
		followUp:       "What backup and rollback strategies would you implement?",
	},
	{
		category:       scoring.CategoryCloud,
		format:         "Tell me about your cloud experience with %s. How would you set up a CI/CD pipeline for a microservices architecture?",
		label:          "DevOps & Cloud",
		expectedAnswer: "Should cover build, automated tests, staged environments and deployment strategy",
		caseStudy:      "A company wants to deploy 15 microservices with automated testing, staging, and production deployment.",
		followUp:       "How would you handle service dependencies and deployment ordering?",
	},
}

var (
	leadershipQuestion = Question{
		Question:       "As a senior developer, how do you approach code reviews and mentoring junior team members?",
		Category:       "Leadership",
		ExpectedAnswer: "Should show constructive feedback, coaching and shared standards",
		CaseStudy:      "A junior developer consistently writes code that works but isn't following best practices or is hard to maintain.",
		FollowUp:       "How do you balance providing guidance while encouraging independent problem-solving?",
	}
	problemSolvingQuestion = Question{
		Question:       "Describe a time when you had to debug a critical production issue. What was your approach?",
		Category:       "Problem Solving",
		ExpectedAnswer: "Should include triage, root cause analysis, fix and prevention",
		CaseStudy:      "Your application suddenly starts throwing 500 errors for 30% of users, affecting revenue. You have 2 hours to fix it.",
		FollowUp:       "How do you prevent similar issues in the future?",
	}
	projectManagementQuestion = Question{
		Question:       "How do you handle competing priorities when managing multiple projects with tight deadlines?",
		Category:       "Project Management",
		ExpectedAnswer: "Should cover prioritization, stakeholder communication and trade-offs",
		CaseStudy:      "You have 3 critical features due the same week, but each requires your full attention for successful delivery.",
		FollowUp:       "How do you communicate delays or resource needs to stakeholders?",
	}
	behavioralQuestions = []Question{
		{
			Question:       "Tell me about a time you had to learn a new technology quickly to solve a problem.",
			Category:       "Adaptability",
			ExpectedAnswer: "Should describe a learning strategy and a concrete outcome",
			CaseStudy:      "Your team needs to integrate with a third-party API using a technology stack you've never used before, and it's needed in 2 weeks.",
			FollowUp:       "What resources do you typically use for rapid learning?",
		},
		{
			Question:       "How do you stay current with technology trends and decide which ones to adopt?",
			Category:       "Continuous Learning",
			ExpectedAnswer: "Should mention learning resources and how adoption is evaluated",
			CaseStudy:      "Your company is considering migrating from REST APIs to GraphQL, and you need to make a recommendation.",
			FollowUp:       "How do you evaluate the ROI of adopting new technologies?",
		},
	}
	fallbackQuestions = []Question{
		{
			Question:       "Tell me about yourself and your technical background.",
			Category:       "Introduction",
			ExpectedAnswer: "Should include background, skills, and career goals",
			CaseStudy:      "Imagine you're introducing yourself to a new team of developers.",
		},
		{
			Question:       "Describe a challenging technical problem you've solved recently.",
			Category:       "Problem Solving",
			ExpectedAnswer: "Should include problem, solution, and results",
			CaseStudy:      "A feature you developed is causing performance issues in production.",
		},
		{
			Question:       "How do you approach debugging when you encounter an error you've never seen before?",
			Category:       "Debugging",
			ExpectedAnswer: "Should show a systematic approach to isolating the cause",
			CaseStudy:      "Your application crashes with a cryptic error message and no clear stack trace.",
		},
		{
			Question:       "What's your experience with version control and collaborative development?",
			Category:       "Collaboration",
			ExpectedAnswer: "Should cover branching, code review and resolving conflicts",
			CaseStudy:      "You need to merge a feature branch that conflicts with recent changes from 3 other developers.",
		},
		{
			Question:       "How do you ensure code quality and maintainability in your projects?",
			Category:       "Best Practices",
			ExpectedAnswer: "Should cover testing, reviews, documentation and refactoring",
			CaseStudy:      "You're joining a project with legacy code that has no tests and poor documentation.",
		},
	}
)

func (t skillTemplate) question(skills []string) Question {
	return Question{
		Question:       fmt.Sprintf(t.format, strings.Join(skills, ", ")),
		Category:       t.label,
		ExpectedAnswer: t.expectedAnswer,
		CaseStudy:      t.caseStudy,
		FollowUp:       t.followUp,
	}
}
