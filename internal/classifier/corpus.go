package classifier

import "finpet/internal/models"

// sample is one labeled training example.
type sample struct {
	Description string
	Type        models.ExpenseType
	Category    string
}

// corpus is the fixed labeled training set. It is intentionally small and
// synthetic; the models built from it are trained once per process and never
// learn from live expenses.
var corpus = []sample{
	{"Bought milk and bread", models.ExpenseTypeNeed, "Food"},
	{"Ordered pizza online", models.ExpenseTypeWant, "Food"},
	{"Had dinner at an Italian restaurant", models.ExpenseTypeWant, "Food"},
	{"Grabbed a coffee on the way", models.ExpenseTypeWant, "Food"},
	{"Lunch at a local cafe", models.ExpenseTypeNeed, "Food"},
	{"Grocery shopping for vegetables and fruits", models.ExpenseTypeNeed, "Food"},
	{"Dinner at a sushi bar", models.ExpenseTypeWant, "Food"},
	{"Breakfast at a diner", models.ExpenseTypeNeed, "Food"},
	{"Snacked on chips", models.ExpenseTypeWant, "Food"},
	{"Ordered takeout Chinese food", models.ExpenseTypeWant, "Food"},
	{"Paid electricity bill for this month", models.ExpenseTypeNeed, "Utilities"},
	{"Paid water bill", models.ExpenseTypeNeed, "Utilities"},
	{"Settled internet bill", models.ExpenseTypeNeed, "Utilities"},
	{"Paid gas bill", models.ExpenseTypeNeed, "Utilities"},
	{"Paid cable TV subscription", models.ExpenseTypeNeed, "Utilities"},
	{"Received phone bill", models.ExpenseTypeNeed, "Utilities"},
	{"Paid heating bill", models.ExpenseTypeNeed, "Utilities"},
	{"Paid property tax", models.ExpenseTypeNeed, "Utilities"},
	{"Monthly rent payment", models.ExpenseTypeNeed, "Housing"},
	{"Paid maintenance fee for condo", models.ExpenseTypeNeed, "Housing"},
	{"Bought a monthly bus pass", models.ExpenseTypeNeed, "Transport"},
	{"Uber ride to the airport", models.ExpenseTypeWant, "Transport"},
	{"Taxi fare from downtown", models.ExpenseTypeWant, "Transport"},
	{"Subway ticket purchase", models.ExpenseTypeNeed, "Transport"},
	{"Train ticket to the city", models.ExpenseTypeNeed, "Transport"},
	{"Rented a car for a day", models.ExpenseTypeWant, "Transport"},
	{"Bike sharing rental", models.ExpenseTypeNeed, "Transport"},
	{"Paid for ride-sharing service", models.ExpenseTypeWant, "Transport"},
	{"Bus fare for school commute", models.ExpenseTypeNeed, "Transport"},
	{"Ferry ticket to the island", models.ExpenseTypeWant, "Transport"},
	{"Bought new shoes online", models.ExpenseTypeWant, "Shopping"},
	{"Purchased a designer bag", models.ExpenseTypeWant, "Shopping"},
	{"Online shopping for clothes", models.ExpenseTypeWant, "Shopping"},
	{"Bought a new jacket at the mall", models.ExpenseTypeWant, "Shopping"},
	{"Purchased a smartphone accessory", models.ExpenseTypeWant, "Shopping"},
	{"Bought electronics from a store", models.ExpenseTypeWant, "Electronics"},
	{"Shopping spree at a department store", models.ExpenseTypeWant, "Shopping"},
	{"Bought a new pair of jeans", models.ExpenseTypeWant, "Shopping"},
	{"Purchased a watch", models.ExpenseTypeWant, "Shopping"},
	{"Bought home decor items", models.ExpenseTypeWant, "Shopping"},
	{"Subscribed to an online course", models.ExpenseTypeWant, "Education"},
	{"Bought textbooks for college", models.ExpenseTypeNeed, "Education"},
	{"Paid tuition fees", models.ExpenseTypeNeed, "Education"},
	{"Enrolled in a language course", models.ExpenseTypeWant, "Education"},
	{"Paid for a workshop", models.ExpenseTypeNeed, "Education"},
	{"Purchased educational software", models.ExpenseTypeNeed, "Education"},
	{"Registered for an online seminar", models.ExpenseTypeWant, "Education"},
	{"Bought study materials", models.ExpenseTypeNeed, "Education"},
	{"Paid for certification exam", models.ExpenseTypeNeed, "Education"},
	{"Subscribed to an academic journal", models.ExpenseTypeWant, "Education"},
	{"Movie night ticket", models.ExpenseTypeWant, "Entertainment"},
	{"Concert ticket purchase", models.ExpenseTypeWant, "Entertainment"},
	{"Attended a comedy show", models.ExpenseTypeWant, "Entertainment"},
	{"Paid for streaming service subscription", models.ExpenseTypeWant, "Entertainment"},
	{"Bought a ticket for a theatre play", models.ExpenseTypeWant, "Entertainment"},
	{"Went to a music festival", models.ExpenseTypeWant, "Entertainment"},
	{"Paid for a dance class", models.ExpenseTypeWant, "Entertainment"},
	{"Attended a sports game", models.ExpenseTypeWant, "Entertainment"},
	{"Bought a video game", models.ExpenseTypeWant, "Entertainment"},
	{"Visited an amusement park", models.ExpenseTypeWant, "Entertainment"},
	{"Recharged my mobile phone", models.ExpenseTypeNeed, "Utilities"},
	{"Bought a birthday gift for a friend", models.ExpenseTypeWant, "Gifts"},
	{"Repaired a broken laptop", models.ExpenseTypeNeed, "Electronics"},
	{"Gym membership fee", models.ExpenseTypeWant, "Fitness"},
	{"Paid for a haircut", models.ExpenseTypeNeed, "Personal Care"},
	{"Purchased office supplies", models.ExpenseTypeNeed, "Shopping"},
	{"Paid for a pet grooming session", models.ExpenseTypeWant, "Personal Care"},
	{"Donated to charity", models.ExpenseTypeWant, "Charity"},
	{"Purchased a book", models.ExpenseTypeNeed, "Education"},
	{"Had a medical checkup", models.ExpenseTypeNeed, "Health"},
}
