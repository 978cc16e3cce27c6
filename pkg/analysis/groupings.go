package analysis

import (
	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/data"
	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/dataprep"
	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/report"
	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/stats"
)

// View is one grouping with the labels of its count and rate panels.
type View struct {
	Grouping stats.Grouping
	Count    report.Chart
	Rate     report.Chart
}

var (
	classOrder  = []string{"1", "2", "3"}
	sexOrder    = []string{"female", "male"}
	familyOrder = []string{"yes", "no"}
)

const (
	yPassengers   = "Number of Passengers"
	ySurvivalRate = "Survival Rate"
	xClass        = "Passenger Class"
	xAge          = "Age Category"
)

// Views returns the groupings explored, in presentation order.
func Views() []View {
	orders := map[string][]string{
		data.ColPclass:      classOrder,
		data.ColSex:         sexOrder,
		data.ColAgeCategory: dataprep.AgeCategories,
		data.ColHasFamily:   familyOrder,
	}
	view := func(name string, keys []string, countTitle, rateTitle, xLabel string) View {
		return View{
			Grouping: stats.Grouping{Name: name, Keys: keys, Orders: orders},
			Count:    report.Chart{Title: countTitle, XLabel: xLabel, YLabel: yPassengers},
			Rate:     report.Chart{Title: rateTitle, XLabel: xLabel, YLabel: ySurvivalRate},
		}
	}

	return []View{
		view("class", []string{data.ColPclass},
			"Absolute distribution of passengers by class",
			"Survival rate of passengers by class", xClass),
		view("sex", []string{data.ColSex},
			"Number of passengers by sex",
			"Survival rate of passengers by sex", "Sex"),
		view("class_sex", []string{data.ColPclass, data.ColSex},
			"Number of passengers by class and sex",
			"Survival rate of passengers by class and sex", xClass),
		view("age", []string{data.ColAgeCategory},
			"Number of passengers by age",
			"Survival rate of passengers by age", xAge),
		view("age_sex", []string{data.ColAgeCategory, data.ColSex},
			"Number of passengers by age and sex",
			"Survival rate of passengers by age and sex", xAge),
		view("age_class", []string{data.ColAgeCategory, data.ColPclass},
			"Number of passengers by age and class",
			"Survival rate of passengers by age and class", xAge),
		view("family_class", []string{data.ColHasFamily, data.ColPclass},
			"Number of passengers by having family onboard and class",
			"Survival rate of passengers by having family onboard and class", "Family Onboard"),
	}
}
