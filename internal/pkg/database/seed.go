package database

import (
	"time"

	feedmodel "garden_feed/internal/domain/feed/model"
	usermodel "garden_feed/internal/domain/user/model"
)

// Seed 写入演示数据：六位园丁、一周内的八条动态、若干评论和点赞
// 插入完成后重算每条动态的派生计数，保证计数与行数一致
func Seed(db *MemDB) {
	now := time.Now()

	type seedUser struct {
		username, email, location, zone string
	}
	seedUsers := []seedUser{
		{"sarah_martinez", "sarah@example.com", "Davis, CA", "9b"},
		{"mike_chen", "mike@example.com", "San Jose, CA", "9b"},
		{"lisa_rodriguez", "lisa@example.com", "Fresno, CA", "9a"},
		{"david_thompson", "david@example.com", "Fresno, CA", "9a"},
		{"jennifer_adams", "jennifer@example.com", "San Jose, CA", "9b"},
		{"dr_maria_santos", "maria@example.com", "UC Extension", "Expert"},
	}

	type seedPost struct {
		userID   uint
		content  string
		category string
		ageHours int
	}
	seedPosts := []seedPost{
		{1, "DROUGHT EMERGENCY: My tomatoes are wilting despite daily watering! The soil is bone dry 2 inches down and we're hitting 105F daily in Davis. Has anyone found effective deep watering techniques for raised beds?", "drought", 160},
		{6, "EXPERT TIP: For drought conditions, try the 'deep and infrequent' watering method. Water thoroughly 2-3 times per week rather than daily light watering, and add a 3-inch mulch layer to retain moisture.", "plant-care", 140},
		{2, "SUCCESS STORY! After 3 weeks of battling aphids on my roses, I finally won using ladybugs and neem oil spray. The key was persistence - spraying every 3 days. Happy to share my exact treatment schedule.", "success", 120},
		{3, "HELP NEEDED: Strange white spots appearing on my pepper plant leaves, now covering 50% of the foliage. Zone 9a, full sun. Could this be powdery mildew? What's the best organic treatment?", "pests", 100},
		{4, "Water-wise gardening update from Fresno: Switched to drought-resistant natives and cut my water bill by 60%! California poppies, lavender, and rosemary are thriving. Zone 9a gardeners - highly recommend.", "success", 80},
		{5, "Spider mites are decimating my cucumber plants! Tiny webs everywhere and leaves turning bronze. Traditional sprays aren't working. Has anyone tried predatory mites? San Jose area, zone 9b.", "pests", 60},
		{1, "Follow-up on my drought situation: the drip irrigation system is amazing! Tomatoes recovered within days and water usage dropped 50%. Davis gardeners - I have extra supplies if anyone wants to try.", "success", 40},
		{2, "Question about companion planting: does anyone have experience with basil and tomatoes together? My basil seems to be struggling in the tomato bed. Should I adjust spacing or watering? Zone 9b.", "plant-care", 20},
	}

	type seedComment struct {
		postID, userID uint
		content        string
		ageHours       int
	}
	seedComments := []seedComment{
		{1, 6, "I'd recommend deep watering twice weekly instead of daily. Also check if your soil has proper drainage.", 110},
		{1, 2, "Same issue here! I installed a drip system last month and it's been a game-changer.", 100},
		{2, 3, "This is exactly what I needed! Going to try the mulch layer this weekend.", 90},
		{3, 4, "Congrats! I've been struggling with aphids too. Could you share your exact neem oil schedule?", 70},
		{4, 6, "Looks like powdery mildew. Try a milk spray solution, 1 part milk to 10 parts water.", 50},
		{6, 1, "Spider mites are tough! I've had success with predatory mites, takes about 2 weeks to see results.", 30},
	}

	seedLikes := []feedmodel.LikeKey{
		{PostID: 1, UserID: 2}, {PostID: 1, UserID: 3}, {PostID: 1, UserID: 4},
		{PostID: 2, UserID: 1}, {PostID: 2, UserID: 3}, {PostID: 2, UserID: 4}, {PostID: 2, UserID: 5},
		{PostID: 3, UserID: 1}, {PostID: 3, UserID: 6},
		{PostID: 4, UserID: 2}, {PostID: 4, UserID: 5},
		{PostID: 5, UserID: 1}, {PostID: 5, UserID: 2}, {PostID: 5, UserID: 6},
		{PostID: 6, UserID: 3}, {PostID: 6, UserID: 4},
		{PostID: 7, UserID: 2}, {PostID: 7, UserID: 3}, {PostID: 7, UserID: 6},
		{PostID: 8, UserID: 1}, {PostID: 8, UserID: 4},
	}

	db.Update(func() {
		for _, u := range seedUsers {
			user := &usermodel.User{
				ID:        db.NextUserID(),
				Username:  u.username,
				Email:     u.email,
				Password:  "password",
				Location:  u.location,
				Zone:      u.zone,
				CreatedAt: now.Add(-14 * 24 * time.Hour),
			}
			db.Users[user.ID] = user
		}

		for _, p := range seedPosts {
			post := &feedmodel.Post{
				ID:        db.NextPostID(),
				UserID:    p.userID,
				Content:   p.content,
				Category:  p.category,
				CreatedAt: now.Add(-time.Duration(p.ageHours) * time.Hour),
			}
			db.Posts[post.ID] = post
		}

		for _, c := range seedComments {
			comment := &feedmodel.Comment{
				ID:        db.NextCommentID(),
				PostID:    c.postID,
				UserID:    c.userID,
				Content:   c.content,
				CreatedAt: now.Add(-time.Duration(c.ageHours) * time.Hour),
			}
			db.Comments[comment.ID] = comment
		}

		for i, key := range seedLikes {
			db.Likes[key] = &feedmodel.Like{
				ID:        db.NextLikeID(),
				PostID:    key.PostID,
				UserID:    key.UserID,
				CreatedAt: now.Add(-time.Duration(i+1) * time.Hour),
			}
		}

		// 重算派生计数
		for id, post := range db.Posts {
			likes, comments := 0, 0
			for key := range db.Likes {
				if key.PostID == id {
					likes++
				}
			}
			for _, c := range db.Comments {
				if c.PostID == id {
					comments++
				}
			}
			post.Likes = likes
			post.CommentCount = comments
		}
	})
}
