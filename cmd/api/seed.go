package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/services"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert generated patient and medical staff fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			patientsFile, _ := cmd.Flags().GetString("patients")
			staffFile, _ := cmd.Flags().GetString("staff")
			if patientsFile == "" && staffFile == "" {
				return fmt.Errorf("--patients or --staff is required")
			}
			return runSeed(cmd.Context(), patientsFile, staffFile)
		},
	}
	cmd.Flags().String("patients", "", "JSON array of patient documents (e.g. patients.json)")
	cmd.Flags().String("staff", "", "JSON array of medical staff documents (e.g. medicalStaff.json)")
	return cmd
}

func runSeed(ctx context.Context, patientsFile, staffFile string) error {
	patients, doctors, err := readFixtures(patientsFile, staffFile)
	if err != nil {
		return err
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	nPatients, nDoctors, err := services.Seed(ctx, a.store, patients, doctors)
	ids := make([]int64, 0, len(doctors))
	for _, d := range doctors {
		ids = append(ids, d.ID)
	}
	services.ForgetDoctors(ctx, a.doctorFinder(), a.logger, ids...)
	a.logger.Info().Int("patients", nPatients).Int("doctors", nDoctors).Msg("seeded fixtures")
	return err
}

func readFixtures(patientsFile, staffFile string) ([]models.Patient, []models.Doctor, error) {
	var (
		patients []models.Patient
		doctors  []models.Doctor
	)
	if patientsFile != "" {
		data, err := os.ReadFile(patientsFile)
		if err != nil {
			return nil, nil, err
		}
		if patients, err = services.DecodePatients(data); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", patientsFile, err)
		}
	}
	if staffFile != "" {
		data, err := os.ReadFile(staffFile)
		if err != nil {
			return nil, nil, err
		}
		if doctors, err = services.DecodeDoctors(data); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", staffFile, err)
		}
	}
	return patients, doctors, nil
}
