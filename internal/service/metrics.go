package service

// AttributeMetrics holds binary classification metrics for one annotated
// attribute.
type AttributeMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// PrecisionRecallF1 computes binary metrics treating true as the positive
// class. Undefined ratios (zero denominators) are reported as 0.
func PrecisionRecallF1(gold, pred []bool) AttributeMetrics {
	var tp, fp, fn int
	for i := range gold {
		switch {
		case pred[i] && gold[i]:
			tp++
		case pred[i] && !gold[i]:
			fp++
		case !pred[i] && gold[i]:
			fn++
		}
	}

	var m AttributeMetrics
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}
