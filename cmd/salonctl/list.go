package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"salonhub-backend/models"
	"salonhub-backend/repository"
	"salonhub-backend/tenant"
	"salonhub-backend/utils"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func salonsCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salons",
		Short: "Salon utilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all salons",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := opts.open()
			if err != nil {
				return err
			}
			var salons []models.Salon
			if err := db.WithContext(commandContext(cmd)).Order("slug").Find(&salons).Error; err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSLUG\tNAME\tACTIVE")
			for _, s := range salons {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", s.ID, s.Slug, s.Name, s.IsActive)
			}
			return w.Flush()
		},
	})
	return cmd
}

func appointmentsCommand(opts *globalOptions) *cobra.Command {
	var (
		salonSlug string
		date      string
	)

	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "Appointment utilities",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List appointments of every salon, or of --salon",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := opts.open()
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)

			scope := tenant.None
			if salonSlug != "" {
				slug, err := utils.NormalizeSlug(salonSlug)
				if err != nil {
					return err
				}
				var salon models.Salon
				if err := db.WithContext(ctx).First(&salon, "slug = ?", slug).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("salon %q not found", slug)
					}
					return err
				}
				scope = tenant.For(salon.ID)
			}
			ctx = tenant.WithScope(ctx, scope)

			q := repository.FromContext(ctx, db).Query(ctx).
				Preload("Client").
				Preload("Service").
				Order("slot_date, slot_time")
			if date != "" {
				d, err := utils.ParseDate(date)
				if err != nil {
					return err
				}
				q = q.Where("slot_date = ?", d)
			}

			var appointments []models.Appointment
			if err := q.Find(&appointments).Error; err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SALON\tDATE\tTIME\tSTATUS\tCLIENT\tSERVICE")
			for _, a := range appointments {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					a.SalonID, a.Date.Format(utils.DateLayout), a.Time, a.Status, a.Client.FullName(), a.Service.Name)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&salonSlug, "salon", "", "Only this salon (slug)")
	list.Flags().StringVar(&date, "date", "", "Only this day (YYYY-MM-DD)")
	cmd.AddCommand(list)
	return cmd
}
