package content

import "time"

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

var defaultTopics = []Topic{
	{ID: 1, Name: "Manual Testing", Description: "Articles about manual testing techniques and best practices."},
	{ID: 2, Name: "Selenium", Description: "Tutorials and tips for Selenium automation."},
	{ID: 3, Name: "Python", Description: "Python programming for testers and developers."},
	{ID: 4, Name: "Travel", Description: "Travel experiences and recommendations."},
	{ID: 5, Name: "Career Growth", Description: "Tips for growing your career in tech."},
}

var defaultPosts = []Post{
	{ID: 1, TopicID: 2, Title: "Getting Started with Selenium WebDriver", Published: date("2023-02-15"),
		Snippet: "Learn how to set up and use Selenium WebDriver for automated testing...",
		Body: "Selenium WebDriver is one of the most popular tools for automated testing of web applications.\n\n" +
			"## Setup\n\n1. Install a browser driver\n2. Add the client library\n3. Open a page and assert on its title\n\n" +
			"```python\ndriver = webdriver.Chrome()\ndriver.get(\"https://example.com\")\n```\n"},
	{ID: 2, TopicID: 1, Title: "Best Practices for Manual Testing", Published: date("2023-01-20"),
		Snippet: "Discover the most effective techniques for manual testing that will improve your efficiency...",
		Body: "Manual testing is a crucial part of the software development lifecycle.\n\n" +
			"- Write charters before exploratory sessions\n- Record what you *did not* test\n- Pair with developers on risky areas\n"},
	{ID: 3, TopicID: 3, Title: "Python for Test Automation", Published: date("2023-03-05"),
		Snippet: "Python has become the language of choice for test automation. Here's why and how to get started..."},
	{ID: 4, TopicID: 4, Title: "My Trip to Japan", Published: date("2022-11-10"),
		Snippet: "Exploring the beautiful landscapes and rich culture of Japan..."},
	{ID: 5, TopicID: 5, Title: "From Tester to Test Lead", Published: date("2023-02-28"),
		Snippet: "My journey and lessons learned transitioning from a tester to a test lead role..."},
	{ID: 6, TopicID: 2, Title: "Advanced Selenium Techniques", Published: date("2023-04-10"),
		Snippet: "Take your Selenium skills to the next level with these advanced techniques..."},
	{ID: 7, TopicID: 3, Title: "Introduction to API Testing", Published: date("2023-03-20"),
		Snippet: "Learn the basics of API testing and why it's important for your test strategy..."},
	{ID: 8, TopicID: 4, Title: "Exploring Europe", Published: date("2023-01-05"),
		Snippet: "My adventures traveling through various European countries..."},
	{ID: 9, TopicID: 3, Title: "Test Automation Frameworks", Published: date("2023-05-15"),
		Snippet: "A comparison of popular test automation frameworks and when to use each..."},
	{ID: 10, TopicID: 1, Title: "Effective Test Documentation", Published: date("2023-04-25"),
		Snippet: "How to create test documentation that is both useful and maintainable..."},
	{ID: 11, TopicID: 1, Title: "Mobile Testing Strategies", Published: date("2023-06-10"),
		Snippet: "Comprehensive guide to testing mobile applications across different platforms and devices..."},
	{ID: 12, TopicID: 2, Title: "Selenium Grid for Parallel Testing", Published: date("2023-06-05"),
		Snippet: "How to set up and use Selenium Grid for running tests in parallel across multiple browsers..."},
	{ID: 13, TopicID: 3, Title: "Python Design Patterns for Test Automation", Published: date("2023-05-28"),
		Snippet: "Implementing design patterns in your Python test automation framework for better maintainability..."},
	{ID: 14, TopicID: 4, Title: "My Adventure in South America", Published: date("2023-04-15"),
		Snippet: "Exploring the diverse cultures and breathtaking landscapes of South America..."},
	{ID: 15, TopicID: 5, Title: "Transitioning from Manual to Automation Testing", Published: date("2023-05-20"),
		Snippet: "A step-by-step guide for manual testers looking to move into automation testing roles..."},
}
