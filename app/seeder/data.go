package main

import "campusMatching/domain"

const seedPassword = "password123"

// interests and tags are comma-separated vocabulary entries
func seedStudents() []domain.Student {
	return []domain.Student{
		{Email: "alice@example.com", Name: "Alice", Year: "freshman", Major: "Computer Science", Interests: "academic_stem_tech,gaming,creative_arts"},
		{Email: "bob@example.com", Name: "Bob", Year: "sophomore", Major: "Economics", Interests: "business_career,service,cultural"},
		{Email: "carol@example.com", Name: "Carol", Year: "junior", Major: "Environmental Science", Interests: "activism_environment,sports,service"},
		{Email: "dave@example.com", Name: "Dave", Year: "freshman", Major: "Undeclared", Interests: "gaming,sports,cultural"},
		{Email: "admin@example.com", Name: "Admin", Year: "other", Major: "Student Life", Role: "admin"},
	}
}

func seedClubs() []domain.Club {
	return []domain.Club{
		{
			Name:        "AI & Robotics Lab Club",
			Description: "Student-run club for projects in AI, robotics, and machine learning. We do weekly hack nights and semester-long projects.",
			Tags:        "academic_stem_tech",
			MeetingTime: "Tue 18:00",
			Location:    "Engineering Building Room 101",
		},
		{
			Name:        "Startup & Entrepreneurship Circle",
			Description: "Discuss startup ideas, host pitch nights, and invite founders and alumni to talk about building companies.",
			Tags:        "business_career,academic_stem_tech",
			MeetingTime: "Thu 19:00",
			Location:    "Business School Lounge",
		},
		{
			Name:        "Campus Jazz Band",
			Description: "Open jazz ensemble for all instruments and levels. We rehearse weekly and perform once per semester.",
			Tags:        "creative_arts",
			MeetingTime: "Wed 19:30",
			Location:    "Music Hall Studio 3",
		},
		{
			Name:        "Recreational Soccer Club",
			Description: "Casual soccer games twice a week, open to all skill levels. Great for staying active and meeting new people.",
			Tags:        "sports",
			MeetingTime: "Mon 17:00",
			Location:    "Main Athletic Field",
		},
		{
			Name:        "Board Games & Tabletop Society",
			Description: "Weekly board game nights with modern board games, card games, and tabletop RPG one-shots.",
			Tags:        "gaming,creative_arts",
			MeetingTime: "Fri 19:00",
			Location:    "Student Lounge",
		},
		{
			Name:        "Community Service Volunteers",
			Description: "Organizes volunteering trips and service projects in the local community. Transportation is usually provided.",
			Tags:        "service",
			MeetingTime: "Sat 10:00",
			Location:    "Community Center",
		},
		{
			Name:        "Climate Action & Sustainability Group",
			Description: "Student organization focused on climate activism, sustainability projects, and campus-wide environmental campaigns.",
			Tags:        "activism_environment,service",
			MeetingTime: "Tue 17:30",
			Location:    "Science Building Room 210",
		},
		{
			Name:        "Debate & Politics Forum",
			Description: "Hosts weekly debates on current events and political issues, plus practice sessions for competitions.",
			Tags:        "politics,academic_stem_tech",
			MeetingTime: "Thu 18:30",
			Location:    "Humanities Building Room 305",
		},
		{
			Name:        "International & Cultural Exchange Club",
			Description: "Cultural potlucks, language exchange, and events celebrating different cultures on campus.",
			Tags:        "cultural",
			MeetingTime: "Fri 18:00",
			Location:    "Global Lounge",
		},
		{
			Name:        "Interfaith Fellowship",
			Description: "Discussion and community space for students from different faith backgrounds. Weekly meetings and occasional retreats.",
			Tags:        "faith,service",
			MeetingTime: "Sun 16:00",
			Location:    "Chapel Meeting Room",
		},
	}
}
