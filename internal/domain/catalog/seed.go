package catalog

import "github.com/okian/mergington/internal/domain/model"

// Default returns a fresh copy of the built-in Mergington High School catalog.
func Default() model.Catalog {
	return model.Catalog{
		// Sports
		{Name: "Soccer Team", Activity: model.Activity{
			Description:     "Join the school soccer team and compete in local leagues",
			Schedule:        "Wednesdays, 4:00 PM - 6:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"alex@mergington.edu", "lucas@mergington.edu"},
		}},
		{Name: "Basketball Club", Activity: model.Activity{
			Description:     "Practice basketball skills and play friendly matches",
			Schedule:        "Mondays, 4:00 PM - 5:30 PM",
			MaxParticipants: 15,
			Participants:    []string{"mia@mergington.edu", "liam@mergington.edu"},
		}},
		{Name: "Gym Class", Activity: model.Activity{
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		}},
		{Name: "Swim Team", Activity: model.Activity{
			Description:     "Train and compete with the school's swim team",
			Schedule:        "Tuesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"sarah@mergington.edu", "noah@mergington.edu"},
		}},

		// Arts
		{Name: "Art Club", Activity: model.Activity{
			Description:     "Explore painting, drawing, and sculpture",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 16,
			Participants:    []string{"ava@mergington.edu", "ethan@mergington.edu"},
		}},
		{Name: "Drama Society", Activity: model.Activity{
			Description:     "Act, direct, and produce school plays",
			Schedule:        "Fridays, 4:00 PM - 6:00 PM",
			MaxParticipants: 20,
			Participants:    []string{"isabella@mergington.edu", "jack@mergington.edu"},
		}},
		{Name: "Photography Club", Activity: model.Activity{
			Description:     "Learn photography techniques and participate in photo walks",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 10,
			Participants:    []string{"lucy@mergington.edu", "ben@mergington.edu"},
		}},
		{Name: "Music Band", Activity: model.Activity{
			Description:     "Join the school band and perform at events",
			Schedule:        "Tuesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"oliver@mergington.edu", "ella@mergington.edu"},
		}},

		// Intellectual
		{Name: "Chess Club", Activity: model.Activity{
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		}},
		{Name: "Programming Class", Activity: model.Activity{
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		}},
		{Name: "Debate Team", Activity: model.Activity{
			Description:     "Develop public speaking and argumentation skills",
			Schedule:        "Mondays, 3:30 PM - 5:00 PM",
			MaxParticipants: 14,
			Participants:    []string{"william@mergington.edu", "grace@mergington.edu"},
		}},
		{Name: "Math Olympiad", Activity: model.Activity{
			Description:     "Prepare for math competitions and solve challenging problems",
			Schedule:        "Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"harry@mergington.edu", "amelia@mergington.edu"},
		}},
	}
}
