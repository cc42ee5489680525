package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/rollcall/internal/directory"
	"github.com/roach88/rollcall/internal/model"
	"github.com/roach88/rollcall/internal/roster"
)

// TeacherOptions holds the profile flags shared by teacher add and update.
type TeacherOptions struct {
	*RootOptions
	Name       string
	Email      string
	Department string
	EmployeeID string
	Phone      string
	JoinDate   string
	Active     bool
}

// NewTeacherCommand creates the teacher command group.
func NewTeacherCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teacher",
		Short: "Manage the teacher directory",
	}

	cmd.AddCommand(newTeacherAddCommand(rootOpts))
	cmd.AddCommand(newTeacherUpdateCommand(rootOpts))
	cmd.AddCommand(newTeacherDeleteCommand(rootOpts))
	cmd.AddCommand(newTeacherGetCommand(rootOpts))
	cmd.AddCommand(newTeacherListCommand(rootOpts))
	cmd.AddCommand(newTeacherImportCommand(rootOpts))

	return cmd
}

func bindProfileFlags(cmd *cobra.Command, opts *TeacherOptions) {
	cmd.Flags().StringVar(&opts.Name, "name", "", "full name")
	cmd.Flags().StringVar(&opts.Email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.Department, "department", "", "department")
	cmd.Flags().StringVar(&opts.EmployeeID, "employee-id", "", "employee id")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&opts.JoinDate, "join-date", "", "join date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&opts.Active, "active", true, "whether the teacher is active")
}

func newTeacherAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TeacherOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a teacher",
		Long: `Add a teacher to the directory. A unique id is assigned and printed.

Example:
  rollcall teacher add --name "Ana Lima" --email ana@school.test \
    --department Math --employee-id E1 --join-date 2023-09-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				t, err := a.dir.Add(ctx, model.NewTeacher{
					Name:        opts.Name,
					Email:       opts.Email,
					Department:  opts.Department,
					EmployeeID:  opts.EmployeeID,
					PhoneNumber: opts.Phone,
					JoinDate:    opts.JoinDate,
					IsActive:    opts.Active,
				}.Normalized())
				if err != nil {
					return failure("failed to add teacher", err)
				}
				if a.out.IsJSON() {
					return a.out.Success(t)
				}
				fmt.Fprintf(a.out.Writer, "Added %s (%s)\n", t.Name, t.ID)
				return nil
			})
		},
	}

	bindProfileFlags(cmd, opts)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTeacherUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TeacherOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <teacher-id>",
		Short: "Change fields of a teacher",
		Long: `Change the given fields of a teacher; other fields are kept.
Attendance records keep the name the teacher had when they checked in.

Example:
  rollcall teacher update 0191... --department Science --active=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := profilePatch(cmd, opts).Normalized()
			if patch.IsEmpty() {
				return &ExitError{Code: ExitCommandError, Reason: ErrCodeInvalidInput, Message: "nothing to update: pass at least one field flag"}
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				if _, err := a.teacher(args[0]); err != nil {
					return err
				}
				if err := a.dir.Update(ctx, args[0], patch); err != nil {
					return failure("failed to update teacher", err)
				}
				t, _ := a.dir.Get(args[0])
				if a.out.IsJSON() {
					return a.out.Success(t)
				}
				fmt.Fprintf(a.out.Writer, "Updated %s (%s)\n", t.Name, t.ID)
				return nil
			})
		},
	}

	bindProfileFlags(cmd, opts)

	return cmd
}

// profilePatch builds a patch from the flags set on the command line.
func profilePatch(cmd *cobra.Command, opts *TeacherOptions) model.TeacherPatch {
	var p model.TeacherPatch
	set := func(name string, dst **string, v *string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("name", &p.Name, &opts.Name)
	set("email", &p.Email, &opts.Email)
	set("department", &p.Department, &opts.Department)
	set("employee-id", &p.EmployeeID, &opts.EmployeeID)
	set("phone", &p.PhoneNumber, &opts.Phone)
	set("join-date", &p.JoinDate, &opts.JoinDate)
	if cmd.Flags().Changed("active") {
		p.IsActive = &opts.Active
	}
	return p
}

func newTeacherDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <teacher-id>",
		Short: "Remove a teacher from the directory",
		Long: `Remove a teacher from the directory. Their attendance records are kept.
Deleting an unknown id does nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				_, existed := a.dir.Get(args[0])
				if err := a.dir.Delete(ctx, args[0]); err != nil {
					return failure("failed to delete teacher", err)
				}
				if a.out.IsJSON() {
					return a.out.Success(map[string]any{"id": args[0], "deleted": existed})
				}
				if existed {
					fmt.Fprintf(a.out.Writer, "Deleted %s\n", args[0])
				} else {
					fmt.Fprintf(a.out.Writer, "No teacher with id %s\n", args[0])
				}
				return nil
			})
		},
	}
}

func newTeacherGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <teacher-id>",
		Short: "Show a teacher",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				t, err := a.teacher(args[0])
				if err != nil {
					return err
				}
				if a.out.IsJSON() {
					return a.out.Success(t)
				}
				printTeacher(a.out.Writer, t)
				return nil
			})
		},
	}
}

func newTeacherListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		activeOnly bool
		search     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List teachers",
		Long: `List teachers in the order they were added.

--search matches name, department, employee id and email, ignoring case.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				teachers := a.dir.Search(search)
				if activeOnly {
					teachers = slices.DeleteFunc(a.dir.ListActive(), func(t model.Teacher) bool {
						return !directory.Matches(t, search)
					})
				}
				if a.out.IsJSON() {
					return a.out.Success(teachers)
				}
				printTeachers(a.out.Writer, teachers)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active teachers")
	cmd.Flags().StringVar(&search, "search", "", "filter by name, department, employee id or email")

	return cmd
}

func newTeacherImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <roster.cue>",
		Short: "Add teachers from a CUE roster file",
		Long: `Add every teacher listed in a CUE roster file.

The file is validated as a whole before anything is added. Entries whose
employee id is already in the directory are skipped.

Example roster:
  teachers: [
    {name: "Ana Lima", email: "ana@school.test", department: "Math",
     employee_id: "E1", join_date: "2023-09-01"},
  ]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := roster.Load(args[0])
			if err != nil {
				return &ExitError{Code: ExitCommandError, Reason: ErrCodeInvalidRoster, Message: "invalid roster", Err: err}
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				res, err := roster.Import(ctx, a.dir, entries)
				if err != nil {
					return failure("import stopped", err)
				}
				if a.out.IsJSON() {
					return a.out.Success(res)
				}
				fmt.Fprintf(a.out.Writer, "Imported %d teacher(s), skipped %d\n", len(res.Added), len(res.Skipped))
				for _, id := range res.Skipped {
					a.out.VerboseLog("skipped %s: employee id already present", id)
				}
				return nil
			})
		},
	}
}
