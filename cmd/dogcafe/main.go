package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dogcafe6ix/dogcafe-api/internal/client"
	"github.com/dogcafe6ix/dogcafe-api/shared/payload"
)

const defaultServerURL = "http://localhost:3000"

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "dogcafe",
	Short: "Dog Cafe 6ix command line client",
	Long:  "CLI for booking visits and following the community feed at Dog Cafe 6ix",
}

var signinCmd = &cobra.Command{
	Use:   "signin [email]",
	Short: "Request a sign-in code for your email",
	Args:  cobra.ExactArgs(1),
	Run:   runSignIn,
}

var verifyCmd = &cobra.Command{
	Use:   "verify [email] [code]",
	Short: "Exchange the emailed code for a session",
	Args:  cobra.ExactArgs(2),
	Run:   runVerify,
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out and delete stored credentials",
	Run:   runSignOut,
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the signed-in user",
	Run:   runMe,
}

var profileUsername string
var profilePicture string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update your profile",
	Run:   runProfile,
}

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List available visit plans",
	Run:   runPlans,
}

var bookRequests string

var bookCmd = &cobra.Command{
	Use:   "book [plan-id] [date] [time]",
	Short: "Book a visit (date YYYY-MM-DD, time HH:MM)",
	Args:  cobra.ExactArgs(3),
	Run:   runBook,
}

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List your bookings",
	Run:   runBookings,
}

var cancelCmd = &cobra.Command{
	Use:   "cancel [booking-id]",
	Short: "Cancel a booking",
	Args:  cobra.ExactArgs(1),
	Run:   runCancel,
}

var postImage string

var postCmd = &cobra.Command{
	Use:   "post [content]",
	Short: "Share a post on the community feed",
	Args:  cobra.ExactArgs(1),
	Run:   runPost,
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the community feed",
	Run:   runFeed,
}

var likeCmd = &cobra.Command{
	Use:   "like [post-id]",
	Short: "Like or unlike a post",
	Args:  cobra.ExactArgs(1),
	Run:   runLike,
}

var commentCmd = &cobra.Command{
	Use:   "comment [post-id] [content]",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(2),
	Run:   runComment,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "API server URL (defaults to $DOGCAFE_SERVER or "+defaultServerURL+")")
	profileCmd.Flags().StringVar(&profileUsername, "username", "", "New username")
	profileCmd.Flags().StringVar(&profilePicture, "picture", "", "New profile picture URL")
	bookCmd.Flags().StringVar(&bookRequests, "requests", "", "Special requests for the visit")
	postCmd.Flags().StringVar(&postImage, "image", "", "Image URL to attach")

	rootCmd.AddCommand(
		signinCmd, verifyCmd, signoutCmd, meCmd, profileCmd,
		plansCmd, bookCmd, bookingsCmd, cancelCmd,
		postCmd, feedCmd, likeCmd, commentCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newSession() *client.Session {
	url := serverURL
	if url == "" {
		url = os.Getenv("DOGCAFE_SERVER")
	}
	if url == "" {
		url = defaultServerURL
	}

	dir, err := client.DefaultStoreDir()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	return client.NewSession(client.NewAPIClient(url), client.NewTokenStore(dir))
}

// loadedSession restores the persisted session and exits when it cannot.
func loadedSession(ctx context.Context) *client.Session {
	session := newSession()
	if err := session.Load(ctx); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	return session
}

// signedInSession is loadedSession plus a signed-in requirement.
func signedInSession(ctx context.Context) *client.Session {
	session := loadedSession(ctx)
	if session.State() != client.StateSignedIn {
		fmt.Println("Not signed in. Run 'dogcafe signin <email>' first.")
		os.Exit(1)
	}

	return session
}

func runSignIn(cmd *cobra.Command, args []string) {
	session := newSession()

	if err := session.SignIn(context.Background(), args[0]); err != nil {
		fmt.Printf("Sign-in failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("If %s is reachable, a verification code is on its way.\n", args[0])
	fmt.Println("Run 'dogcafe verify <email> <code>' to finish signing in.")
}

func runVerify(cmd *cobra.Command, args []string) {
	session := newSession()

	ok, err := session.Verify(context.Background(), args[0], args[1])
	if err != nil {
		fmt.Printf("Verification failed: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Println("Invalid or expired code. Request a new one with 'dogcafe signin'.")
		os.Exit(1)
	}

	user := session.CurrentUser()
	fmt.Printf("Signed in as %s\n", displayName(user))
}

func runSignOut(cmd *cobra.Command, args []string) {
	session := newSession()

	if err := session.SignOut(); err != nil {
		fmt.Printf("Sign-out failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Signed out.")
}

func runMe(cmd *cobra.Command, args []string) {
	session := signedInSession(context.Background())

	user := session.CurrentUser()
	fmt.Printf("Email:    %s\n", user.Email)
	if user.Username != "" {
		fmt.Printf("Username: %s\n", user.Username)
	}
	if user.ProfilePicture != "" {
		fmt.Printf("Picture:  %s\n", user.ProfilePicture)
	}
	fmt.Printf("Joined:   %s\n", user.CreatedAt.Format("2006-01-02"))
}

func runProfile(cmd *cobra.Command, args []string) {
	if profileUsername == "" && profilePicture == "" {
		fmt.Println("Nothing to update. Pass --username and/or --picture.")
		os.Exit(1)
	}

	ctx := context.Background()
	session := signedInSession(ctx)

	var req payload.UpdateProfileRequest
	if profileUsername != "" {
		req.Username = &profileUsername
	}
	if profilePicture != "" {
		req.ProfilePicture = &profilePicture
	}

	user, err := session.UpdateProfile(ctx, req)
	if err != nil {
		fmt.Printf("Profile update failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Profile updated. You are now %s\n", displayName(user))
}

func runPlans(cmd *cobra.Command, args []string) {
	session := newSession()

	plans, err := session.API().ListPlans(context.Background())
	if err != nil {
		fmt.Printf("Failed to load plans: %v\n", err)
		os.Exit(1)
	}

	for _, plan := range plans {
		fmt.Printf("%s  %s ($%.2f)\n", plan.ID, plan.Name, plan.Price)
		fmt.Printf("    %s\n", plan.Description)
		fmt.Printf("    %d hour(s), up to %d dog(s)\n", plan.Duration, plan.MaxDogs)
	}
}

func runBook(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	session := signedInSession(ctx)

	booking, err := session.API().CreateBooking(ctx, session.Token(), payload.CreateBookingRequest{
		Plan:            args[0],
		Date:            args[1],
		Time:            args[2],
		SpecialRequests: bookRequests,
	})
	if err != nil {
		fmt.Printf("Booking failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Booked! %s on %s at %s (%s)\n", booking.Plan.Name, booking.Date, booking.Time, booking.Status)
	fmt.Printf("Booking ID: %s\n", booking.ID)
}

func runBookings(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	session := signedInSession(ctx)

	bookings, err := session.API().ListMyBookings(ctx, session.Token())
	if err != nil {
		fmt.Printf("Failed to load bookings: %v\n", err)
		os.Exit(1)
	}

	if len(bookings) == 0 {
		fmt.Println("No bookings yet. Run 'dogcafe plans' to pick one.")
		return
	}

	for _, booking := range bookings {
		planName := "unknown plan"
		if booking.Plan != nil {
			planName = booking.Plan.Name
		}
		fmt.Printf("%s  %s %s  %s  [%s]\n", booking.ID, booking.Date, booking.Time, planName, booking.Status)
	}
}

func runCancel(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	session := signedInSession(ctx)

	booking, err := session.API().CancelBooking(ctx, session.Token(), args[0])
	if err != nil {
		fmt.Printf("Cancellation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Booking %s is now %s.\n", booking.ID, booking.Status)
}

func runPost(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	session := signedInSession(ctx)

	post, err := session.API().CreatePost(ctx, session.Token(), payload.CreatePostRequest{
		Content: args[0],
		Image:   postImage,
	})
	if err != nil {
		fmt.Printf("Post failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Posted! Post ID: %s\n", post.ID)
}

func runFeed(cmd *cobra.Command, args []string) {
	session := newSession()

	posts, err := session.API().ListPosts(context.Background())
	if err != nil {
		fmt.Printf("Failed to load feed: %v\n", err)
		os.Exit(1)
	}

	if len(posts) == 0 {
		fmt.Println("The feed is empty. Be the first to post!")
		return
	}

	for _, post := range posts {
		author := post.User.Username
		if author == "" {
			author = post.User.ID
		}

		fmt.Printf("%s  %s (%s)\n", post.ID, author, post.CreatedAt.Format(time.RFC822))
		fmt.Printf("    %s\n", post.Content)
		fmt.Printf("    %d like(s), %d comment(s)\n", len(post.Likes), len(post.Comments))
		for _, comment := range post.Comments {
			commenter := comment.User.Username
			if commenter == "" {
				commenter = comment.User.ID
			}
			fmt.Printf("      %s: %s\n", commenter, comment.Content)
		}
	}
}

func runLike(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	session := signedInSession(ctx)

	likes, err := session.API().ToggleLike(ctx, session.Token(), args[0])
	if err != nil {
		fmt.Printf("Like failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Post now has %d like(s).\n", len(likes.Likes))
}

func runComment(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	session := signedInSession(ctx)

	comments, err := session.API().AddComment(ctx, session.Token(), args[0], args[1])
	if err != nil {
		fmt.Printf("Comment failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Comment added. Post now has %d comment(s).\n", len(comments.Comments))
}

func displayName(user *payload.UserResponse) string {
	if user == nil {
		return "unknown"
	}
	if user.Username != "" {
		return user.Username
	}

	return strings.Split(user.Email, "@")[0]
}
