package cli

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"capifit/internal/client/gateway"
	"capifit/internal/domain"
)

func (a *App) register(ctx context.Context) {
	name, err := getSimpleText(a.reader, "Your name:", a.writer())
	if err != nil {
		return
	}
	email, err := getSimpleText(a.reader, "Email:", a.writer())
	if err != nil {
		return
	}
	password, err := getPassword(a.writer())
	if err != nil {
		return
	}
	if err := a.controller.Register(ctx, name, email, password); err != nil {
		fmt.Println("Registration failed:", err)
		return
	}
	fmt.Println("Registered. You can now log in.")
}

func (a *App) login(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Email:", a.writer())
	if err != nil {
		return
	}
	password, err := getPassword(a.writer())
	if err != nil {
		return
	}
	if err := a.controller.Login(ctx, email, password); err != nil {
		fmt.Println("Login failed:", err)
		return
	}
	fmt.Println("Logged in.")
	a.refresh(ctx)
}

func (a *App) refresh(ctx context.Context) {
	if err := a.controller.Refresh(ctx); err != nil {
		fmt.Println("Refresh failed:", err)
		if !a.controller.LoggedIn() {
			fmt.Println("Session expired, please log in again.")
		}
		return
	}
	snap := a.controller.Snapshot()
	fmt.Printf("Loaded %d students, %d workout plans, %d diet plans.\n",
		len(snap.Students), len(snap.WorkoutPlans), len(snap.DietPlans))
}

func (a *App) listStudents() {
	snap := a.controller.Snapshot()
	if len(snap.Students) == 0 {
		fmt.Println("No students on the roster.")
		return
	}
	for _, s := range snap.Students {
		fmt.Printf("%s  %-20s %-25s %-8s workout=%s diet=%s\n",
			s.ID.Hex(), s.Name, s.Email, s.Status,
			planName(snap.WorkoutPlans, s.WorkoutPlanID),
			planName(snap.DietPlans, s.DietPlanID))
	}
}

// planName resolves a plan reference against the snapshot. A dangling
// reference is tolerated as "unknown plan", never treated as fatal.
func planName(plans []domain.PlanTemplate, id *primitive.ObjectID) string {
	if id == nil {
		return "-"
	}
	for _, p := range plans {
		if p.ID == *id {
			return p.Name
		}
	}
	return "unknown plan"
}

func (a *App) addStudent(ctx context.Context) {
	name, err := getSimpleText(a.reader, "Student name:", a.writer())
	if err != nil {
		return
	}
	email, err := getSimpleText(a.reader, "Student email:", a.writer())
	if err != nil {
		return
	}
	plan, err := getSimpleText(a.reader, "Subscription plan (e.g. Premium Monthly):", a.writer())
	if err != nil {
		return
	}
	draft := gateway.StudentDraft{Name: name, Email: email, Plan: plan, Status: domain.StatusActive}
	if err := a.controller.AddStudent(ctx, draft); err != nil {
		fmt.Println("Could not add student:", err)
		return
	}
	fmt.Println("Student added.")
}

func (a *App) askKind() (domain.PlanKind, bool) {
	v, err := getSimpleText(a.reader, "Plan kind (workout/diet):", a.writer())
	if err != nil {
		return "", false
	}
	kind := domain.PlanKind(v)
	if !kind.Valid() {
		fmt.Println("Unknown kind:", v)
		return "", false
	}
	return kind, true
}

func (a *App) listPlans(ctx context.Context) {
	kind, ok := a.askKind()
	if !ok {
		return
	}
	plans := a.controller.Templates().List(kind)
	if len(plans) == 0 {
		fmt.Println("No plans yet.")
		return
	}
	for _, p := range plans {
		fmt.Printf("%s  %s\n", p.ID.Hex(), p.Name)
	}
}

func (a *App) addPlan(ctx context.Context) {
	kind, ok := a.askKind()
	if !ok {
		return
	}
	name, err := getSimpleText(a.reader, "Plan name:", a.writer())
	if err != nil {
		return
	}
	details, err := getMultiline(a.reader, "Plan details:", a.writer())
	if err != nil {
		return
	}
	res, err := a.controller.CreatePlan(ctx, kind, gateway.PlanDraft{Name: name, Details: details})
	if err != nil {
		fmt.Println("Could not create plan:", err)
		return
	}
	if res.Created {
		fmt.Println("Plan created:", res.Template.ID.Hex())
	} else {
		fmt.Println("Reusing existing plan:", res.Template.ID.Hex())
	}
}

func (a *App) assignPlan(ctx context.Context) {
	kind, ok := a.askKind()
	if !ok {
		return
	}
	studentID, err := getSimpleText(a.reader, "Student id:", a.writer())
	if err != nil {
		return
	}
	name, err := getSimpleText(a.reader, "Plan name:", a.writer())
	if err != nil {
		return
	}
	details, err := getMultiline(a.reader, "Plan details (used only if the plan does not exist yet):", a.writer())
	if err != nil {
		return
	}
	err = a.controller.AssignPlan(ctx, kind, studentID, gateway.PlanDraft{Name: name, Details: details})
	if err != nil {
		fmt.Println("Could not assign plan:", err)
		return
	}
	fmt.Println("Plan assigned.")
}

func (a *App) suggest(ctx context.Context) {
	kind, ok := a.askKind()
	if !ok {
		return
	}
	prompt, err := getSimpleText(a.reader, "Describe the plan you need:", a.writer())
	if err != nil {
		return
	}
	text, err := a.controller.Suggest(ctx, kind, prompt)
	if err != nil {
		fmt.Println("Suggestion failed:", err)
		return
	}
	fmt.Println()
	fmt.Println(text)
}
