package marketing

import "fmt"

func seoPrompt(url, title, metaDesc, h1Tags, keywords string) string {
	return fmt.Sprintf(`
Analyze this webpage SEO for the following elements:
URL: %s
Title: %s
Meta Description: %s
H1 Tags: %s
Target Keywords: %s

Provide specific recommendations for:
1. Title optimization
2. Meta description improvements
3. Content structure
4. Keyword placement
5. Technical SEO improvements
`, url, title, metaDesc, h1Tags, keywords)
}

func competitorPrompt(competitor, keywords string) string {
	return fmt.Sprintf(`
Analyze the market position and strategy for %s based on:
1. Search rankings
2. Content strategy
3. Keywords they're ranking for: %s
4. Recent changes or updates
`, competitor, keywords)
}

func recommendationPrompt(customerData string) string {
	return fmt.Sprintf(`
Based on the following customer data:
%s

Generate personalized product recommendations considering:
1. Past purchase history
2. Browsing behavior
3. Demographics
4. Market trends
`, customerData)
}

func postPrompt(topic, platform, tone string) string {
	return fmt.Sprintf(`
Create a %s post about %s with a %s tone.
Include:
1. Main post content
2. Relevant hashtags
3. Call to action
4. Best posting time recommendation
`, platform, topic, tone)
}

func emailPrompt(campaignType, segment string) string {
	return fmt.Sprintf(`
Create an email campaign for:
Campaign Type: %s
Audience Segment: %s

Include:
1. Subject line options
2. Email body
3. Call to action
4. Personalization elements
`, campaignType, segment)
}

func subjectLinesPrompt(campaignType, segmentName string) string {
	return fmt.Sprintf("Generate 5 engaging subject lines for %s campaign targeting %s", campaignType, segmentName)
}

func sentimentPrompt(brandName, mentions string) string {
	return fmt.Sprintf(`
Analyze the sentiment and brand perception for %s based on these mentions:
%s

Provide:
1. Overall sentiment score (positive/negative/neutral)
2. Key positive mentions
3. Key concerns or negative feedback
4. Trend analysis
5. Recommendations for improvement
`, brandName, mentions)
}

func performancePrompt(content, platform string) string {
	return fmt.Sprintf(`
Analyze this content for %s and predict its performance:
%s

Consider:
1. Engagement potential (likes, shares, comments)
2. Viral potential
3. SEO impact
4. Target audience resonance
5. Best posting time and frequency
6. Potential improvements
`, platform, content)
}

func pricePrompt(mainPrice, allPrices string) string {
	return fmt.Sprintf(`
Analyze these prices and provide recommendations:
Main product: %s
Competitor prices: %s

Consider:
1. Price positioning
2. Competitive advantage
3. Pricing strategy recommendations
4. Market opportunity
`, mainPrice, allPrices)
}

func journeyPrompt(customerData string) string {
	return fmt.Sprintf(`
Analyze this customer's journey based on their data:
%s

Map out:
1. Key touchpoints
2. Pain points
3. Conversion opportunities
4. Personalization recommendations
5. Next best actions
6. Retention strategies
`, customerData)
}
