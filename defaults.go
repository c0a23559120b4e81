package podsettings

import (
	"fmt"
	"time"
)

// Section keys of the default schema, in tab order.
const (
	SectionGeneral     = "general"
	SectionFeedDetails = "feed-details"
	SectionSecurity    = "security"
	SectionRedirection = "redirection"
	SectionPublishing  = "publishing"
	SectionHosting     = "hosting"
)

// categoryOptions is the Apple Podcasts top-level category list.
func categoryOptions() []Option {
	names := []string{
		"Arts",
		"Business",
		"Comedy",
		"Education",
		"Games & Hobbies",
		"Government & Organizations",
		"Health",
		"Kids & Family",
		"Music",
		"News & Politics",
		"Religion & Spirituality",
		"Science & Medicine",
		"Society & Culture",
		"Sports & Recreation",
		"Technology",
		"TV & Film",
	}
	opts := []Option{{Value: "", Label: "-- None --"}}
	for _, n := range names {
		opts = append(opts, Option{Value: n, Label: n})
	}
	return opts
}

// subcategoryOptions is the Apple Podcasts subcategory list, grouped by
// parent category. Groups must stay contiguous: the renderer opens one
// group per run and schema validation rejects a recurring label.
func subcategoryOptions() []Option {
	grouped := []struct {
		group string
		names []string
	}{
		{"Arts", []string{"Design", "Fashion & Beauty", "Food", "Literature", "Performing Arts", "Visual Arts"}},
		{"Business", []string{"Business News", "Careers", "Investing", "Management & Marketing", "Shopping"}},
		{"Education", []string{"Education", "Education Technology", "Higher Education", "K-12", "Language Courses", "Training"}},
		{"Games & Hobbies", []string{"Automotive", "Aviation", "Hobbies", "Other Games", "Video Games"}},
		{"Government & Organizations", []string{"Local", "National", "Non-Profit", "Regional"}},
		{"Health", []string{"Alternative Health", "Fitness & Nutrition", "Self-Help", "Sexuality"}},
		{"Religion & Spirituality", []string{"Buddhism", "Christianity", "Hinduism", "Islam", "Judaism", "Other", "Spirituality"}},
		{"Science & Medicine", []string{"Medicine", "Natural Sciences", "Social Sciences"}},
		{"Society & Culture", []string{"History", "Personal Journals", "Philosophy", "Places & Travel"}},
		{"Sports & Recreation", []string{"Amateur", "College & High School", "Outdoor", "Professional"}},
		{"Technology", []string{"Gadgets", "Tech News", "Podcasting", "Software How-To"}},
	}
	opts := []Option{{Value: "", Label: "-- None --"}}
	for _, g := range grouped {
		for _, n := range g.names {
			opts = append(opts, Option{Value: n, Label: n, Group: g.group})
		}
	}
	return opts
}

// DefaultSchema builds the base podcast settings schema. Site-derived
// defaults (titles, URLs, owner details) come from cfg; callers reshape the
// result through schema filters passed to NewEngine.
func DefaultSchema(cfg Config) Schema {
	feedURL := BuildURL(cfg.URL, "feed", cfg.FeedSlug)

	general := Section{
		Key:         SectionGeneral,
		Title:       "General",
		Description: "General settings for the podcast player and episode display.",
		Fields: []Field{
			{
				ID:          "player_locations",
				Label:       "Media player locations",
				Description: "Select where to show the podcast media player along with the episode data (download link, duration and file size).",
				Type:        FieldMultiCheckbox,
				Options: []Option{
					{Value: "content", Label: "Full content"},
					{Value: "excerpt", Label: "Excerpt"},
					{Value: "excerpt_embed", Label: "oEmbed Excerpt"},
				},
			},
			{
				ID:          "player_content_location",
				Label:       "Media player position",
				Description: "Select whether to display the media player above or below the full episode content.",
				Type:        FieldRadio,
				Options: []Option{
					{Value: "above", Label: "Above content"},
					{Value: "below", Label: "Below content"},
				},
				Default: "above",
			},
			{
				ID:          "player_content_visibility",
				Label:       "Media player visibility",
				Description: "Select whether to display the media player to everybody or only logged in users.",
				Type:        FieldRadio,
				Options: []Option{
					{Value: "all", Label: "Everybody"},
					{Value: "membersonly", Label: "Only logged in users"},
				},
				Default: "all",
			},
			{
				ID:          "itunes_fields_enabled",
				Label:       "Enable iTunes fields",
				Description: "Turn this on to enable the iTunes iOS11 specific fields on each episode.",
				Type:        FieldCheckbox,
				Validator:   CheckboxValue,
			},
			{
				ID:          "player_meta_data_enabled",
				Label:       "Enable player meta data",
				Description: "Turn this on to enable player meta data underneath the player (download link, episode duration and date recorded).",
				Type:        FieldCheckbox,
				Default:     "on",
				Validator:   CheckboxValue,
			},
			{
				ID:          "player_style",
				Label:       "Media player style",
				Description: "Select the style of media player you wish to display on your site.",
				Type:        FieldRadio,
				Options: []Option{
					{Value: "standard", Label: "Standard Compact Player"},
					{Value: "larger", Label: "HTML5 Player With Album Art"},
				},
				Default: "standard",
			},
			{
				ID:          "player_background_skin_colour",
				Label:       "Background skin colour",
				Description: "Only applicable if using the HTML5 player.",
				Type:        FieldColourPicker,
				Default:     "#222222",
				Class:       "colour-picker",
			},
			{
				ID:          "player_wave_form_colour",
				Label:       "Player progress bar colour",
				Description: "Only applicable if using the HTML5 player.",
				Type:        FieldColourPicker,
				Default:     "#fff",
				Class:       "colour-picker",
			},
			{
				ID:          "player_wave_form_progress_colour",
				Label:       "Player progress bar progress colour",
				Description: "Only applicable if using the HTML5 player.",
				Type:        FieldColourPicker,
				Default:     "#00d4f7",
				Class:       "colour-picker",
			},
		},
	}

	feedDetails := Section{
		Key:         SectionFeedDetails,
		Title:       "Feed details",
		Description: "This data will be used in the feed for your podcast so your listeners will know more about it before they subscribe. All fields are optional; blank fields fall back to the assigned defaults in the feed.",
		Fields: []Field{
			{
				ID:          "data_title",
				Label:       "Title",
				Description: "Your podcast title.",
				Type:        FieldText,
				Default:     cfg.Name,
				Placeholder: cfg.Name,
				Class:       "large-text",
				Validator:   StripTags,
			},
			{
				ID:          "data_subtitle",
				Label:       "Subtitle",
				Description: "Your podcast subtitle.",
				Type:        FieldText,
				Default:     cfg.Description,
				Placeholder: cfg.Description,
				Class:       "large-text",
				Validator:   StripTags,
			},
			{
				ID:          "data_author",
				Label:       "Author",
				Description: "Your podcast author.",
				Type:        FieldText,
				Default:     cfg.Owner,
				Placeholder: cfg.Owner,
				Class:       "large-text",
				Validator:   StripTags,
			},
			{
				ID:          "data_category",
				Label:       "Primary Category",
				Description: "Your podcast's primary category.",
				Type:        FieldSelect,
				Options:     categoryOptions(),
				Validator:   StripTags,
			},
			{
				ID:          "data_subcategory",
				Label:       "Primary Sub-Category",
				Description: "Your podcast's primary sub-category (if available) - must be a sub-category of the primary category.",
				Type:        FieldSelect,
				Options:     subcategoryOptions(),
				Validator:   StripTags,
			},
			{
				ID:          "data_category2",
				Label:       "Secondary Category",
				Description: "Your podcast's secondary category.",
				Type:        FieldSelect,
				Options:     categoryOptions(),
				Validator:   StripTags,
			},
			{
				ID:          "data_subcategory2",
				Label:       "Secondary Sub-Category",
				Description: "Your podcast's secondary sub-category (if available) - must be a sub-category of the secondary category.",
				Type:        FieldSelect,
				Options:     subcategoryOptions(),
				Validator:   StripTags,
			},
			{
				ID:          "data_category3",
				Label:       "Tertiary Category",
				Description: "Your podcast's tertiary category.",
				Type:        FieldSelect,
				Options:     categoryOptions(),
				Validator:   StripTags,
			},
			{
				ID:          "data_subcategory3",
				Label:       "Tertiary Sub-Category",
				Description: "Your podcast's tertiary sub-category (if available) - must be a sub-category of the tertiary category.",
				Type:        FieldSelect,
				Options:     subcategoryOptions(),
				Validator:   StripTags,
			},
			{
				ID:          "data_description",
				Label:       "Description/Summary",
				Description: "A description/summary of your podcast - no HTML allowed.",
				Type:        FieldTextarea,
				Default:     cfg.Description,
				Placeholder: cfg.Description,
				Class:       "large-text",
				Validator:   StripTags,
			},
			{
				ID:          "data_image",
				Label:       "Cover Image",
				Description: "Your podcast cover image - must have a minimum size of 1400x1400 px.",
				Type:        FieldImage,
				Validator:   SanitizeURL,
			},
			{
				ID:          "data_owner_name",
				Label:       "Owner name",
				Description: "Podcast owner's name.",
				Type:        FieldText,
				Default:     cfg.Owner,
				Placeholder: cfg.Owner,
				Class:       "large-text",
				Validator:   StripTags,
			},
			{
				ID:          "data_owner_email",
				Label:       "Owner email address",
				Description: "Podcast owner's email address.",
				Type:        FieldText,
				Default:     cfg.OwnerEmail,
				Placeholder: cfg.OwnerEmail,
				Class:       "large-text",
				Validator:   StripTags,
			},
			{
				ID:          "data_language",
				Label:       "Language",
				Description: "Your podcast's language in ISO-639-1 format.",
				Type:        FieldText,
				Default:     cfg.Language,
				Placeholder: cfg.Language,
				Class:       "all-options",
				Validator:   StripTags,
			},
			{
				ID:          "data_copyright",
				Label:       "Copyright",
				Description: "Copyright line for your podcast.",
				Type:        FieldText,
				Default:     fmt.Sprintf("© %d %s", time.Now().Year(), cfg.Name),
				Class:       "large-text",
				Validator:   StripTags,
			},
			{
				ID:          "explicit",
				Label:       "Explicit",
				Description: "Check this box to mark this podcast as explicit.",
				Type:        FieldCheckbox,
				Validator:   CheckboxValue,
			},
			{
				ID:          "complete",
				Label:       "Complete",
				Description: "Mark if this podcast is complete. Only do this if no more episodes are going to be added to this feed.",
				Type:        FieldCheckbox,
				Validator:   CheckboxValue,
			},
			{
				ID:          "publish_date",
				Label:       "Source for publish date",
				Description: `Use the "Published date" of the episode or use "Date recorded" from the episode details.`,
				Type:        FieldRadio,
				Options: []Option{
					{Value: "published", Label: "Published date"},
					{Value: "recorded", Label: "Recorded date"},
				},
				Default: "published",
			},
			{
				ID:          "consume_order",
				Label:       "Show Type",
				Description: "The order your podcast episodes will be listed.",
				Type:        FieldSelect,
				Options: []Option{
					{Value: "", Label: "Please Select"},
					{Value: "episodic", Label: "Episodic"},
					{Value: "serial", Label: "Serial"},
				},
			},
			{
				ID:          FieldIDRedirectFeed,
				Label:       "Redirect this feed to new URL",
				Description: "Redirect your feed to a new URL (specified below).",
				Type:        FieldCheckbox,
				Validator:   CheckboxValue,
			},
			{
				ID:          "new_feed_url",
				Label:       "New podcast feed URL",
				Description: "Your podcast feed's new URL.",
				Type:        FieldText,
				Placeholder: "New feed URL",
				Class:       "regular-text",
				Validator:   SanitizeURL,
			},
			{
				ID:          "itunes_url",
				Label:       "iTunes URL",
				Description: "Your podcast's iTunes URL.",
				Type:        FieldText,
				Placeholder: "iTunes URL",
				Class:       "regular-text",
				Validator:   SanitizeURL,
			},
			{
				ID:          "stitcher_url",
				Label:       "Stitcher URL",
				Description: "Your podcast's Stitcher URL.",
				Type:        FieldText,
				Placeholder: "Stitcher URL",
				Class:       "regular-text",
				Validator:   SanitizeURL,
			},
			{
				ID:          "google_play_url",
				Label:       "Google Play URL",
				Description: "Your podcast's Google Play URL.",
				Type:        FieldText,
				Placeholder: "Google Play URL",
				Class:       "regular-text",
				Validator:   SanitizeURL,
			},
			{
				ID:          "spotify_url",
				Label:       "Spotify URL",
				Description: "Your podcast's Spotify URL.",
				Type:        FieldText,
				Placeholder: "Spotify URL",
				Class:       "regular-text",
				Validator:   SanitizeURL,
			},
		},
	}

	security := Section{
		Key:         SectionSecurity,
		Title:       "Security",
		Description: "Change these settings to ensure that your podcast feed remains private. This will block feed readers (including iTunes) from accessing your feed.",
		Fields: []Field{
			{
				ID:          "protect",
				Label:       "Password protect your podcast feed",
				Description: "Mark if you would like to password protect your podcast feed - you can set the username and password below.",
				Type:        FieldCheckbox,
				Validator:   CheckboxValue,
			},
			{
				ID:          "protection_username",
				Label:       "Username",
				Description: "Username for your podcast feed.",
				Type:        FieldText,
				Placeholder: "Feed username",
				Class:       "regular-text",
				Validator:   StripTags,
			},
			{
				ID:          "protection_password",
				Label:       "Password",
				Description: "Password for your podcast feed. Once saved, the password is encoded and secured so it will not be visible on this page again.",
				Type:        FieldSecret,
				Placeholder: "Feed password",
				Class:       "regular-text",
				Validator:   EncodePassword,
			},
			{
				ID:          "protection_no_access_message",
				Label:       "No access message",
				Description: "This message will be displayed to people who are not allowed access to your podcast feed. Limited HTML allowed.",
				Type:        FieldTextarea,
				Default:     "You are not permitted to view this podcast feed.",
				Placeholder: "Message displayed to users who do not have access to the podcast feed",
				Class:       "large-text",
				Validator:   FilterMessageHTML,
			},
		},
	}

	redirection := Section{
		Key:         SectionRedirection,
		Title:       "Redirection",
		Description: "Use these settings to safely move your podcast to a different location. Only do this once your new podcast is set up and active.",
		Fields: []Field{
			{
				ID:          FieldIDRedirectFeed,
				Label:       "Redirect podcast feed to new URL",
				Description: "Redirect your feed to a new URL (specified below). This will inform all podcasting services that your podcast has moved and 48 hours after you have saved this option it will permanently redirect your feed to the new URL.",
				Type:        FieldCheckbox,
				Validator:   CheckboxValue,
			},
			{
				ID:          "new_feed_url",
				Label:       "New podcast feed URL",
				Description: "Your podcast feed's new URL.",
				Type:        FieldText,
				Placeholder: "New feed URL",
				Class:       "regular-text",
				Validator:   SanitizeURL,
			},
		},
	}

	publishing := Section{
		Key:         SectionPublishing,
		Title:       "Publishing",
		Description: "Use these URLs to share and publish your podcast feed. These URLs will work with any podcasting service (including iTunes).",
		Fields: []Field{
			{
				ID:          "feed_url",
				Label:       "External feed URL",
				Description: "If you are syndicating your podcast using a third-party service you can insert the URL here, otherwise this must be left blank.",
				Type:        FieldText,
				Placeholder: "External feed URL",
				Class:       "regular-text",
				Validator:   SanitizeURL,
			},
			{
				ID:      "feed_link",
				Label:   "Complete feed",
				Type:    FieldLink,
				Default: feedURL,
			},
			{
				ID:      "feed_link_series",
				Label:   "Feed for a specific series",
				Type:    FieldLink,
				Default: feedURL + "/series-slug",
			},
			{
				ID:      "podcast_url",
				Label:   "Podcast page",
				Type:    FieldLink,
				Default: BuildURL(cfg.URL, cfg.FeedSlug),
			},
		},
	}

	hostingSec := Section{
		Key:         SectionHosting,
		Title:       "Hosting",
		Description: "Connect your account on the external hosting service to push feed details and media there.",
		Fields: []Field{
			{
				ID:          FieldIDHostingEmail,
				Label:       "Account email",
				Description: "The email address of your hosting account.",
				Type:        FieldText,
				Placeholder: "email@domain.com",
				Class:       "regular-text",
				Validator:   StripTags,
			},
			{
				ID:          FieldIDHostingToken,
				Label:       "Account API token",
				Description: "The API token of your hosting account.",
				Type:        FieldText,
				Placeholder: "API token",
				Class:       "regular-text",
				Validator:   StripTags,
			},
			{
				ID:   FieldIDHostingAccountID,
				Type: FieldHidden,
			},
			{
				ID:          FieldIDHostingDisconnect,
				Label:       "Disconnect from hosting",
				Description: "Check this box and save to disconnect this site from the hosting service. Your stored credentials will be deleted.",
				Type:        FieldCheckbox,
				Validator:   CheckboxValue,
			},
		},
	}

	return Schema{Sections: []Section{
		general,
		feedDetails,
		security,
		redirection,
		publishing,
		hostingSec,
	}}
}
