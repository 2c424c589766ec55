package catalog

import "github.com/jonathan/resume-enhancer/internal/types"

// Builtin returns the catalog of demo candidates shipped with the binary.
func Builtin() *Static {
	s := NewStatic(nil)
	for _, c := range builtinCandidates() {
		s.add(c.candidate, c.resume, nil)
	}
	return s
}

func builtinCandidates() []record {
	return []record{
		{
			candidate: types.Candidate{ID: "1", Name: "Janhavi Sharma", JobID: DefaultJobID, FitmentScore: 72},
			resume: types.Resume{
				Name:      "Janhavi Sharma",
				Email:     "janhavi.sharma@email.com",
				Phone:     "+91 9876543210",
				LinkedIn:  "linkedin.com/in/janhavisharma",
				Education: "Bachelor of Computer Science, Pune University (2021-2025)",
				Summary:   "Computer Science student with experience in web development and programming.",
				Experience: types.Entries(
					"Developed a Blood Bank Management System using Java and MySQL",
					"Created responsive web interfaces using HTML, CSS, and JavaScript",
				),
				Skills: types.Entries("Java", "React", "SQL"),
				Projects: types.Entries(
					"Blood Bank Management System - Java application with database integration",
					"E-commerce Website - Frontend development with responsive design",
				),
				Achievements: types.Entries(
					"Dean's List for 2 consecutive semesters",
					"Winner of College Technical Fest 2023",
				),
			},
		},
		{
			candidate: types.Candidate{ID: "2", Name: "Aarya Ranpise", JobID: DefaultJobID, FitmentScore: 78},
			resume: types.Resume{
				Name:      "Aarya Ranpise",
				Email:     "aarya123r@email.com",
				Phone:     "+91 9856543211",
				LinkedIn:  "linkedin.com/in/ranpiseaarya",
				GitHub:    "github.com/aarya",
				Education: "Bachelor of Technology, MIT WPU (2021-2025)",
				Summary:   "Computer Science student with experience in web development and programming.",
				Experience: types.Entries(
					"Built web applications using Python and Django framework",
					"Created responsive web interfaces using HTML, CSS, and JavaScript",
				),
				Skills: types.Entries("Python", "Django", "HTML", "CSS"),
				Projects: types.Entries(
					"Library Management System - Python Django application",
					"Personal Portfolio Website - Frontend development with responsive design",
				),
				Achievements: types.Entries(
					"Certificate of Merit in Academics for 2 years",
					"IBM - Java certification course",
				),
			},
		},
		{
			candidate: types.Candidate{ID: "3", Name: "Priya Patel", JobID: DefaultJobID, FitmentScore: 70},
			resume: types.Resume{
				Name:      "Priya Patel",
				Email:     "priya.patel@email.com",
				Phone:     "+91 9876543211",
				LinkedIn:  "linkedin.com/in/priyapatel",
				GitHub:    "github.com/priyapatel",
				Education: "Bachelor of Information Technology, Mumbai University (2021-2025)",
				Summary:   "Computer Science student with experience in web development and programming.",
				Experience: types.Entries(
					"Built web applications using Python and Django framework",
					"Created responsive web interfaces using HTML, CSS, and JavaScript",
				),
				Skills: types.Entries("Python", "Django", "HTML", "CSS"),
				Projects: types.Entries(
					"Library Management System - Python Django application",
					"Personal Portfolio Website - Frontend development with responsive design",
				),
				Achievements: types.Entries(
					"Certificate of Honour in Academics for 2 years",
					"IBM - Python certification course",
				),
			},
		},
		{
			candidate: types.Candidate{ID: "4", Name: "Rahul Singh", JobID: DefaultJobID, FitmentScore: 64},
			resume: types.Resume{
				Name:      "Rahul Singh",
				Email:     "rahul.singh@email.com",
				Phone:     "+91 9876543212",
				LinkedIn:  "linkedin.com/in/rahulsingh",
				Education: "Bachelor of Computer Applications, Delhi University (2021-2025)",
				Summary:   "Computer Science student with experience in web development and programming.",
				Experience: types.Entries(
					"Developed REST APIs using Node.js and Express",
					"Created responsive web interfaces using HTML, CSS, and JavaScript",
				),
				Skills: types.Entries("JavaScript", "Node.js", "MongoDB"),
				Projects: types.Entries(
					"Chat Application - Real-time messaging using Node.js and Socket.io",
					"E-commerce Website - Full-stack development with responsive design",
				),
				Achievements: types.Entries(
					"Best Project Award in Web Development course",
					"Merit at Academic Program - NIT Goa 2024",
				),
			},
		},
		{
			candidate: types.Candidate{ID: "5", Name: "Anita Desai", JobID: DefaultJobID, FitmentScore: 75},
			resume: types.Resume{
				Name:      "Anita Desai",
				Email:     "anita.desai@gmail.com",
				Phone:     "+91 9876543213",
				LinkedIn:  "linkedin.com/in/anitadesai",
				GitHub:    "github.com/anitadesai",
				Education: "Bachelor of Computer Science, Bangalore University (2021-2025)",
				Summary:   "Computer Science student with experience in web development and programming.",
				Experience: types.Entries(
					"Built interactive user interfaces using React and JavaScript",
					"Created responsive web designs using HTML, CSS, and modern frameworks",
				),
				Skills: types.Entries("React", "JavaScript", "CSS", "HTML"),
				Projects: types.Entries(
					"Weather App - React application with API integration",
					"Portfolio Website - Frontend development with modern design",
				),
				Achievements: types.Entries(
					"Outstanding Student in Frontend Development",
					"Udemy - React certification course",
				),
			},
		},
		{
			candidate: types.Candidate{ID: "6", Name: "Vikram Kumar", JobID: DefaultJobID, FitmentScore: 60},
			resume: types.Resume{
				Name:      "Vikram Kumar",
				Email:     "@vikram12345@gmail.com",
				Phone:     "+91 9876543212",
				LinkedIn:  "linkedin.com/in/vikramks",
				Education: "Bachelor of Computer Applications, Delhi University (2022-2026)",
				Summary:   "Computer Science student with experience in web development and software development.",
				Experience: types.Entries(
					"Developed REST APIs using Node.js and Express",
					"Created responsive web interfaces using HTML, CSS, and JavaScript",
				),
				Skills: types.Entries("JavaScript", "Node.js", "MongoDB"),
				Projects: types.Entries(
					"Chat Application - Real-time messaging using Node.js and Socket.io",
					"E-commerce Website - Full-stack development with responsive design",
				),
				Achievements: types.Entries(
					"Best Project Award in Web Development Hackwithme - 2024",
					"Coursera - JavaScript certification",
				),
			},
		},
	}
}
