package form

import (
	"context"
	"log"

	"github.com/opstat/opstat/internal/access"
	"github.com/opstat/opstat/internal/catalog"
	"github.com/opstat/opstat/internal/identity"
	"github.com/opstat/opstat/internal/period"
	"github.com/opstat/opstat/internal/submission"
)

// BuildTopicView materializes one topic for a user. Zero visible questions
// yields Empty=true with no rows; navigation treats such a topic as absent.
func (s *Service) BuildTopicView(ctx context.Context, topic catalog.Topic, user identity.User,
	allowedQ access.Set, companyID string) (TopicView, error) {

	now := s.now()
	view := TopicView{
		ModuleID:       topic.ModuleID,
		TopicID:        topic.ID,
		TopicName:      topic.Name,
		Layout:         topic.Layout,
		Period:         period.Current(now),
		PreviousPeriod: period.Previous(now),
		ShowPrevious:   topic.ShowPrevious,
		ShowCumulative: topic.ShowCumulative,
	}

	all, err := s.catalog.ListQuestions(ctx, topic.ID)
	if err != nil {
		log.Printf("form: list questions of %s: %v", topic.ID, err)
		all = nil
	}
	var visible []catalog.Question
	for _, q := range all {
		if q.Active && allowedQ.Has(q.ID) {
			visible = append(visible, q)
		}
	}
	if len(visible) == 0 {
		view.Empty = true
		return view, nil
	}

	switch topic.Layout {
	case catalog.LayoutSubTopicOverQues, catalog.LayoutQuesOverSubTopic:
		subTopics := s.activeSubTopics(ctx, topic.ID)
		if len(subTopics) > 0 {
			return s.buildMatrix(ctx, view, topic, visible, all, subTopics, user, companyID)
		}
		// A matrix topic without sub-topics degenerates to a flat list.
		fallthrough
	default:
		return s.buildFlat(ctx, view, topic, visible, user, companyID)
	}
}

func (s *Service) buildFlat(ctx context.Context, view TopicView, topic catalog.Topic,
	visible []catalog.Question, user identity.User, companyID string) (TopicView, error) {

	seq := 0
	lastSubTopic := "\x00" // sentinel distinct from any real or empty ID
	for _, q := range visible {
		res, err := s.resolver.Resolve(ctx, q, user, view.Period, view.PreviousPeriod, q.SubTopicID, companyID)
		if err != nil {
			return TopicView{}, err
		}
		if q.SubTopicID != lastSubTopic {
			seq = 0
			lastSubTopic = q.SubTopicID
		}
		seq++

		row := Row{
			QuestionID: q.ID,
			Text:       q.Text,
			Type:       q.Type,
			SubTopicID: q.SubTopicID,
			Seq:        seq,
			Value:      res.Value,
			Editable:   res.Editable,
		}
		if topic.ShowPrevious {
			key := submission.Key{
				UserID: user.ID, QuestionID: q.ID, Period: view.PreviousPeriod,
				SubTopicID: q.SubTopicID, CompanyID: companyID,
			}
			v, err := s.resolver.storedValue(ctx, key, q.Type)
			if err != nil {
				return TopicView{}, err
			}
			row.Previous = v
		}
		if topic.ShowCumulative {
			cum, err := s.cumulative(ctx, topic, q, user, view.Period, res.Value, companyID)
			if err != nil {
				return TopicView{}, err
			}
			row.Cumulative = cum
		}
		view.Total += NumericContribution(q.Type, res.Value)
		view.Rows = append(view.Rows, row)
	}
	return view, nil
}

func (s *Service) buildMatrix(ctx context.Context, view TopicView, topic catalog.Topic,
	visible, all []catalog.Question, subTopics []catalog.SubTopic,
	user identity.User, companyID string) (TopicView, error) {

	dest := destinationSet(all)
	view.SubTopics = subTopics
	markNew := topic.Layout == catalog.LayoutQuesOverSubTopic

	for i, q := range visible {
		row := MatrixRow{QuestionID: q.ID, Text: q.Text, Type: q.Type, Seq: i + 1}
		for _, st := range subTopics {
			res, err := s.resolver.Resolve(ctx, q, user, view.Period, view.PreviousPeriod, st.ID, companyID)
			if err != nil {
				return TopicView{}, err
			}
			cell := Cell{
				SubTopicID: st.ID,
				Value:      res.Value,
				Editable:   res.Editable && !isDestination(dest, q.ID, st.ID),
			}
			if markNew {
				prevKey := submission.Key{
					UserID: user.ID, QuestionID: q.ID, Period: view.PreviousPeriod,
					SubTopicID: st.ID, CompanyID: companyID,
				}
				_, had, err := s.subs.Find(ctx, prevKey)
				if err != nil {
					return TopicView{}, err
				}
				cell.IsNew = !had
			}
			view.Total += NumericContribution(q.Type, res.Value)
			row.Cells = append(row.Cells, cell)
		}
		view.MatrixRows = append(view.MatrixRows, row)
	}
	return view, nil
}

// cumulative sums a question's contributions over the topic's fiscal window
// up to and including the current period. Past months read stored
// submissions only; the current month uses the resolved display value.
func (s *Service) cumulative(ctx context.Context, topic catalog.Topic, q catalog.Question,
	user identity.User, cur, curValue, companyID string) (float64, error) {

	year := period.FiscalYear(topic.FiscalStartMonth, s.now().AddDate(0, -1, 0))
	labels := period.FiscalMonths(topic.FiscalStartMonth, topic.FiscalEndMonth, year)
	labels = period.MonthsThrough(labels, cur)

	total := 0.0
	for _, label := range labels {
		if label == cur {
			total += NumericContribution(q.Type, curValue)
			continue
		}
		key := submission.Key{
			UserID: user.ID, QuestionID: q.ID, Period: label,
			SubTopicID: q.SubTopicID, CompanyID: companyID,
		}
		sub, ok, err := s.subs.Find(ctx, key)
		if err != nil {
			return 0, err
		}
		if ok {
			total += NumericContribution(q.Type, sub.Value)
		}
	}
	return total, nil
}

func (s *Service) activeSubTopics(ctx context.Context, topicID string) []catalog.SubTopic {
	sts, err := s.catalog.ListSubTopics(ctx, topicID)
	if err != nil {
		log.Printf("form: list sub topics of %s: %v", topicID, err)
		return nil
	}
	var out []catalog.SubTopic
	for _, st := range sts {
		if st.Active {
			out = append(out, st)
		}
	}
	return out
}
