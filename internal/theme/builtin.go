package theme

import "github.com/Rrens/birthday-builder/internal/domain"

var builtin = []Theme{
	{
		Key:       "male_friend",
		Colors:    domain.Colors{Primary: "#2980b9", Secondary: "#6dd5fa"},
		IntroText: "Yo!",
		Slides: [SlideCount]domain.Slide{
			{Title: "What's up!", Body: "Another year, another level up."},
			{Title: "Legend", Body: "Keep being the absolute legend you are."},
			{Title: "Grind", Body: "Crushing goals left and right."},
			{Title: "Memories", Body: "Here's to all the crazy times."},
			{Title: "Big Moves", Body: "The world isn't ready for you."},
			{Title: "Brother", Body: "Grateful to have you in my corner."},
			{Title: "Success", Body: "I see big things coming your way."},
			{Title: "Stay Real", Body: "Never change your vibe."},
			{Title: "Party Time", Body: "Have a blast today!"},
			{Title: "Happy Birthday", Body: "Make it count, man!"},
		},
	},
	{
		Key:       "female_friend",
		Colors:    domain.Colors{Primary: "#ff6b9d", Secondary: "#ffc8dd"},
		IntroText: "Hello Beautiful",
		Slides: [SlideCount]domain.Slide{
			{Title: "Hey You", Body: "A little surprise for my favorite person."},
			{Title: "Shine Bright", Body: "Your smile lights up every room."},
			{Title: "Bestie", Body: "Thank you for being you."},
			{Title: "Adventure", Body: "The world is waiting for your magic."},
			{Title: "Queen", Body: "Adjust your crown and keep going."},
			{Title: "Memories", Body: "So many good moments captured."},
			{Title: "Dreams", Body: "Chase them until they are real."},
			{Title: "Strength", Body: "You are stronger than you know."},
			{Title: "Happiness", Body: "Wishing you joy, today and always."},
			{Title: "Happy Birthday", Body: "Have a magical day!"},
		},
	},
	{
		Key:       "university_junior",
		Colors:    domain.Colors{Primary: "#27ae60", Secondary: "#2ecc71"},
		IntroText: "Hello There",
		Slides: [SlideCount]domain.Slide{
			{Title: "Hey!", Body: "Wishing you a fantastic birthday."},
			{Title: "Keep Growing", Body: "Watching your progress is inspiring."},
			{Title: "Focus", Body: "Stay focused on your goals."},
			{Title: "Potential", Body: "You have so much potential."},
			{Title: "Success", Body: "Hard work always pays off."},
			{Title: "Memories", Body: "Cherish these university days."},
			{Title: "Future", Body: "The future looks bright for you."},
			{Title: "Believe", Body: "Believe in yourself as we do."},
			{Title: "Enjoy", Body: "Take a break and enjoy your day."},
			{Title: "Happy Birthday", Body: "Have a wonderful year ahead!"},
		},
	},
	{
		Key:       "student",
		Colors:    domain.Colors{Primary: "#f39c12", Secondary: "#f1c40f"},
		IntroText: "Hey Scholar",
		Slides: [SlideCount]domain.Slide{
			{Title: "Happy B-Day", Body: "Time to take a break from studying!"},
			{Title: "Keep Smiling", Body: "Stay positive and keep pushing."},
			{Title: "Knowledge", Body: "Every year makes you wiser."},
			{Title: "Adventure", Body: "Life is the biggest lesson."},
			{Title: "Goals", Body: "You're getting closer every day."},
			{Title: "Memories", Body: "Don't forget to have fun too."},
			{Title: "Dreams", Body: "Aim high and don't look back."},
			{Title: "You Got This", Body: "Exams are temporary, class is forever."},
			{Title: "Celebration", Body: "Eat cake, you earned it."},
			{Title: "Happy Birthday", Body: "Have an A+ day!"},
		},
	},
}
